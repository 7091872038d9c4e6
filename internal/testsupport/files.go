package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteRDB creates dir/<name>.rdb holding the given lines. Paired with
// WithStubbedTool the lines become the tool's listing for that file.
func WriteRDB(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	path := filepath.Join(dir, name+".rdb")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
