package libretrodb_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"rdbsql/internal/libretrodb"
	"rdbsql/internal/testsupport"
)

type stubExecutor struct {
	stdout []string
	stderr []string
	err    error
	calls  int
	binary string
	args   [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error {
	s.calls++
	s.binary = binary
	s.args = append(s.args, append([]string(nil), args...))
	for _, line := range s.stderr {
		onStderr(line)
	}
	for _, line := range s.stdout {
		onStdout(line)
	}
	return s.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := libretrodb.New("  ", 5); err == nil {
		t.Fatal("expected error for empty binary")
	}
	if _, err := libretrodb.New("libretrodb_tool", -1); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestListPassesPathAndListVerb(t *testing.T) {
	exec := &stubExecutor{stdout: []string{`{"md5":"a"}`, `{"md5":"b"}`}, stderr: []string{"noise"}}
	client, err := libretrodb.New("/opt/libretrodb_tool", 5, libretrodb.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	lines, err := client.List(context.Background(), "/data/Sega - Saturn.rdb")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !slices.Equal(lines, exec.stdout) {
		t.Fatalf("unexpected lines %v", lines)
	}
	if exec.binary != "/opt/libretrodb_tool" {
		t.Fatalf("unexpected binary %q", exec.binary)
	}
	if !slices.Equal(exec.args[0], []string{"/data/Sega - Saturn.rdb", "list"}) {
		t.Fatalf("unexpected args %v", exec.args[0])
	}
}

func TestListToleratesExitStatusWhenOutputProduced(t *testing.T) {
	exec := &stubExecutor{stdout: []string{`{"md5":"a"}`}, err: &libretrodb.ExitError{Code: 1}}
	client, err := libretrodb.New("libretrodb_tool", 0, libretrodb.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	lines, err := client.List(context.Background(), "a.rdb")
	if err != nil {
		t.Fatalf("expected exit status to be tolerated, got %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
}

func TestListFailsOnExitStatusWithoutOutput(t *testing.T) {
	exec := &stubExecutor{err: &libretrodb.ExitError{Code: 1}}
	client, err := libretrodb.New("libretrodb_tool", 0, libretrodb.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.List(context.Background(), "a.rdb")
	var exitErr *libretrodb.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected ExitError, got %v", err)
	}
}

func TestListFailsOnExecutorError(t *testing.T) {
	exec := &stubExecutor{stdout: []string{"partial"}, err: errors.New("read output: token too long")}
	client, err := libretrodb.New("libretrodb_tool", 0, libretrodb.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.List(context.Background(), "a.rdb"); err == nil {
		t.Fatal("expected non-exit errors to fail even with output")
	}
}

func TestListRequiresPath(t *testing.T) {
	exec := &stubExecutor{}
	client, err := libretrodb.New("libretrodb_tool", 0, libretrodb.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.List(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if exec.calls != 0 {
		t.Fatal("executor should not run without a path")
	}
}

func TestStreamRunsRealProcess(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTool(1))
	path := testsupport.WriteRDB(t, cfg.Paths.RDBDir, "Atari - Lynx", `{"md5":"1"}`, `{"md5":"2"}`)

	client, err := libretrodb.New(cfg.Tool.LibretroDBTool, cfg.Tool.TimeoutSeconds)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	var got []string
	n, err := client.Stream(context.Background(), path, func(line string) {
		got = append(got, line)
	})
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	if n != 2 || !slices.Equal(got, []string{`{"md5":"1"}`, `{"md5":"2"}`}) {
		t.Fatalf("unexpected output n=%d lines=%v", n, got)
	}
}

func TestStreamReportsExitStatusFromRealProcess(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTool(3))
	path := testsupport.WriteRDB(t, cfg.Paths.RDBDir, "Empty")

	client, err := libretrodb.New(cfg.Tool.LibretroDBTool, cfg.Tool.TimeoutSeconds)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.Stream(context.Background(), path, nil)
	var exitErr *libretrodb.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 3 {
		t.Fatalf("expected exit status 3, got %v", err)
	}
}

func TestResolveTool(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedTool(0))

	resolved, err := libretrodb.ResolveTool(cfg.Tool.LibretroDBTool)
	if err != nil || resolved != cfg.Tool.LibretroDBTool {
		t.Fatalf("expected stub to resolve, got %q err=%v", resolved, err)
	}

	t.Setenv("PATH", filepath.Dir(cfg.Tool.LibretroDBTool))
	if resolved, err := libretrodb.ResolveTool("libretrodb_tool"); err != nil || resolved != cfg.Tool.LibretroDBTool {
		t.Fatalf("expected PATH lookup to resolve stub, got %q err=%v", resolved, err)
	}

	notExec := filepath.Join(testsupport.BaseDir(cfg), "plain")
	if err := os.WriteFile(notExec, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	for _, binary := range []string{"", "definitely-not-installed-tool", notExec, filepath.Join(testsupport.BaseDir(cfg), "missing", "tool")} {
		if _, err := libretrodb.ResolveTool(binary); !errors.Is(err, libretrodb.ErrToolNotFound) {
			t.Fatalf("ResolveTool(%q): expected ErrToolNotFound, got %v", binary, err)
		}
	}
}

func TestListSourcesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteRDB(t, dir, "Sega - Saturn")
	testsupport.WriteRDB(t, dir, "Nintendo - Game Boy")
	testsupport.WriteRDB(t, dir, "Arcade")
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "cursors.rdb"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	sources, err := libretrodb.ListSources(dir, nil)
	if err != nil {
		t.Fatalf("ListSources returned error: %v", err)
	}
	var names []string
	for _, src := range sources {
		names = append(names, src.Name)
		if !strings.HasSuffix(src.Path, src.Name+".rdb") {
			t.Fatalf("path %q does not match name %q", src.Path, src.Name)
		}
	}
	if !slices.Equal(names, []string{"Arcade", "Nintendo - Game Boy", "Sega - Saturn"}) {
		t.Fatalf("unexpected sources %v", names)
	}
}

func TestListSourcesRejectsFile(t *testing.T) {
	file := testsupport.WriteRDB(t, t.TempDir(), "Arcade")
	if _, err := libretrodb.ListSources(file, nil); err == nil {
		t.Fatal("expected error for non-directory")
	}
	if _, err := libretrodb.ListSources(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
