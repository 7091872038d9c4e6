package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"rdbsql/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The rdb directory exists; the output file does not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RDBDir = filepath.Join(base, "rdb")
	cfgVal.Paths.Output = filepath.Join(base, "out", "libretrodb.sqlite")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Tool.TimeoutSeconds = 10
	if err := os.MkdirAll(cfgVal.Paths.RDBDir, 0o755); err != nil {
		t.Fatalf("mkdir rdb dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithKey sets the dataset uniqueness key.
func WithKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dataset.Key = key
	}
}

// WithOverwrite allows replacing an existing output database.
func WithOverwrite() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dataset.Overwrite = true
	}
}

// WithStubbedTool writes a fake libretrodb_tool that prints the contents of
// the .rdb file it is given and exits with exitCode, then points the config at
// it. Tests store JSON lines directly in their .rdb fixtures.
func WithStubbedTool(exitCode int) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := fmt.Sprintf("#!/bin/sh\n[ \"$2\" = list ] || exit 2\ncat \"$1\"\nexit %d\n", exitCode)
		target := filepath.Join(binDir, "libretrodb_tool")
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub libretrodb_tool: %v", err)
		}
		b.cfg.Tool.LibretroDBTool = target
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.RDBDir)
}
