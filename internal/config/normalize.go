package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTool(); err != nil {
		return err
	}
	c.Dataset.Key = strings.ToLower(strings.TrimSpace(c.Dataset.Key))
	if c.Dataset.Key == "" {
		c.Dataset.Key = defaultDatasetKey
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := lookupEnv(EnvLibretroDBTool); ok {
		c.Tool.LibretroDBTool = value
	}
	if value, ok := lookupEnv(EnvRDBDir); ok {
		c.Paths.RDBDir = value
	}
	if value, ok := lookupEnv(EnvOutput); ok {
		c.Paths.Output = value
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.RDBDir) == "" {
		c.Paths.RDBDir = defaultRDBDir
	}
	if c.Paths.RDBDir, err = expandPath(strings.TrimSpace(c.Paths.RDBDir)); err != nil {
		return fmt.Errorf("paths.rdb_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		c.Paths.Output = defaultOutput
	}
	if c.Paths.Output, err = expandPath(strings.TrimSpace(c.Paths.Output)); err != nil {
		return fmt.Errorf("paths.output: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeTool expands the tool setting only when it looks like a path; a
// bare name is left for PATH lookup.
func (c *Config) normalizeTool() error {
	tool := strings.TrimSpace(c.Tool.LibretroDBTool)
	if tool == "" {
		tool = defaultLibretroDBTool
	}
	if strings.ContainsAny(tool, `/\`) || strings.HasPrefix(tool, "~") {
		expanded, err := expandPath(tool)
		if err != nil {
			return fmt.Errorf("tool.libretrodb_tool: %w", err)
		}
		tool = expanded
	}
	c.Tool.LibretroDBTool = tool
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
