package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTool(); err != nil {
		return err
	}
	if err := c.validateDataset(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.RDBDir == "" {
		return errors.New("paths.rdb_dir must be set")
	}
	if c.Paths.Output == "" {
		return errors.New("paths.output must be set")
	}
	return nil
}

func (c *Config) validateTool() error {
	if c.Tool.LibretroDBTool == "" {
		return errors.New("tool.libretrodb_tool must be set")
	}
	if c.Tool.TimeoutSeconds < 0 {
		return errors.New("tool.timeout_seconds must be zero (no limit) or positive")
	}
	return nil
}

func (c *Config) validateDataset() error {
	switch c.Dataset.Key {
	case KeyMD5, KeySerial:
		return nil
	default:
		return fmt.Errorf("dataset.key must be %q or %q, got %q", KeyMD5, KeySerial, c.Dataset.Key)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
}
