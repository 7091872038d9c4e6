package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"rdbsql/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvLibretroDBTool, "")
	t.Setenv(config.EnvRDBDir, "")
	t.Setenv(config.EnvOutput, "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected no config file")
	}
	if !strings.HasSuffix(resolved, filepath.Join(".config", "rdbsql", "config.toml")) {
		t.Fatalf("unexpected resolved path %q", resolved)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if cfg.Paths.RDBDir != filepath.Join(wd, "rdb") {
		t.Fatalf("unexpected rdb dir %q", cfg.Paths.RDBDir)
	}
	if cfg.Paths.Output != filepath.Join(wd, "libretrodb.sqlite") {
		t.Fatalf("unexpected output %q", cfg.Paths.Output)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected empty log dir, got %q", cfg.Paths.LogDir)
	}
	if cfg.Tool.LibretroDBTool != "libretrodb_tool" {
		t.Fatalf("expected bare tool name to be kept, got %q", cfg.Tool.LibretroDBTool)
	}
	if cfg.Dataset.Key != config.KeyMD5 {
		t.Fatalf("expected md5 key by default, got %q", cfg.Dataset.Key)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadReadsFileAndExpandsTilde(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `
[paths]
rdb_dir = "~/rdb"
output = "~/out/db.sqlite"

[tool]
libretrodb_tool = "~/bin/libretrodb_tool"
timeout_seconds = 0

[dataset]
key = "SERIAL"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected file %q to be used, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.RDBDir != filepath.Join(home, "rdb") {
		t.Fatalf("unexpected rdb dir %q", cfg.Paths.RDBDir)
	}
	if cfg.Paths.Output != filepath.Join(home, "out", "db.sqlite") {
		t.Fatalf("unexpected output %q", cfg.Paths.Output)
	}
	if cfg.Tool.LibretroDBTool != filepath.Join(home, "bin", "libretrodb_tool") {
		t.Fatalf("unexpected tool %q", cfg.Tool.LibretroDBTool)
	}
	if cfg.Tool.TimeoutSeconds != 0 {
		t.Fatalf("expected timeout 0, got %d", cfg.Tool.TimeoutSeconds)
	}
	if cfg.Dataset.Key != config.KeySerial {
		t.Fatalf("expected serial key, got %q", cfg.Dataset.Key)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestLoadPrefersProjectFile(t *testing.T) {
	isolate(t)

	if err := os.WriteFile("rdbsql.toml", []byte("[dataset]\nkey = \"serial\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "rdbsql.toml" {
		t.Fatalf("expected project config, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Dataset.Key != config.KeySerial {
		t.Fatalf("expected serial key from project file, got %q", cfg.Dataset.Key)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvLibretroDBTool, "/opt/retro/libretrodb_tool")
	t.Setenv(config.EnvOutput, "/tmp/from-env.sqlite")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tool.LibretroDBTool != "/opt/retro/libretrodb_tool" {
		t.Fatalf("expected tool from env, got %q", cfg.Tool.LibretroDBTool)
	}
	if cfg.Paths.Output != "/tmp/from-env.sqlite" {
		t.Fatalf("expected output from env, got %q", cfg.Paths.Output)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key policy", "[dataset]\nkey = \"crc\"\n", "dataset.key"},
		{"negative timeout", "[tool]\ntimeout_seconds = -1\n", "tool.timeout_seconds"},
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"unknown field", "[paths]\nstaging_dir = \"x\"\n", "strict mode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	var parsed config.Config
	if err := toml.Unmarshal([]byte(config.Sample()), &parsed); err != nil {
		t.Fatalf("sample does not parse: %v", err)
	}
	if parsed.Dataset.Key != config.KeyMD5 {
		t.Fatalf("unexpected sample key %q", parsed.Dataset.Key)
	}

	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample to load cleanly, exists=%v err=%v", exists, err)
	}
}

func TestEnsureDirectoriesCreatesOutputParentAndLogDir(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Output = filepath.Join(base, "out", "db.sqlite")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{filepath.Join(base, "out"), cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s, err=%v", dir, err)
		}
	}
}
