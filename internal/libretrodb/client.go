package libretrodb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"rdbsql/internal/logging"
)

// ErrToolNotFound reports that the configured libretrodb_tool cannot be run.
var ErrToolNotFound = errors.New("libretrodb_tool not found")

// maxLineBytes bounds a single JSON line; long descriptions in some catalogs
// exceed bufio's 64 KiB default.
const maxLineBytes = 16 << 20

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error
}

// ExitError is returned by an Executor when the command ran but exited with a
// non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger sets the logger used for tool diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "libretrodb")
	}
}

// Client runs libretrodb_tool.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// New constructs a client for binary. A timeoutSeconds of zero disables the
// per-file timeout.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("libretrodb_tool binary required")
	}
	if timeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid timeout %d", timeoutSeconds)
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the configured tool path.
func (c *Client) Binary() string {
	return c.binary
}

// Stream runs "<tool> <path> list" and passes every stdout line to fn. It
// returns the number of lines delivered.
//
// libretrodb_tool exits non-zero after a complete listing on some builds, so a
// failing exit status is only an error when nothing was printed.
func (c *Client) Stream(ctx context.Context, path string, fn func(string)) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, errors.New("rdb path required")
	}
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logger := c.logger.With(logging.String("rdb_path", path))
	lines := 0
	err := c.exec.Run(runCtx, c.binary, []string{path, "list"},
		func(line string) {
			lines++
			if fn != nil {
				fn(line)
			}
		},
		func(line string) {
			logger.Debug("libretrodb_tool stderr", logging.String("stderr", line))
		},
	)
	if err == nil {
		return lines, nil
	}
	if ctxErr := runCtx.Err(); ctxErr != nil {
		return lines, fmt.Errorf("libretrodb_tool %s: %w", path, ctxErr)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && lines > 0 {
		logging.WarnWithContext(logger, "libretrodb_tool exited with non-zero status", "tool_exit_status",
			logging.Int("exit_code", exitErr.Code),
			logging.Int("lines", lines),
			logging.String(logging.FieldErrorHint, "output was produced; verify the catalog if counts look low"),
			logging.String(logging.FieldImpact, "listing kept"),
		)
		return lines, nil
	}
	return lines, fmt.Errorf("libretrodb_tool %s: %w", path, err)
}

// List collects every line printed for path.
func (c *Client) List(ctx context.Context, path string) ([]string, error) {
	var out []string
	if _, err := c.Stream(ctx, path, func(line string) {
		out = append(out, line)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveTool returns the executable path for binary. Values containing a path
// separator are checked on disk; bare names are looked up on $PATH.
func ResolveTool(binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", fmt.Errorf("%w: no binary configured", ErrToolNotFound)
	}
	if !strings.ContainsRune(binary, os.PathSeparator) {
		resolved, err := exec.LookPath(binary)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not on PATH", ErrToolNotFound, binary)
		}
		return resolved, nil
	}
	info, err := os.Stat(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrToolNotFound, err)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return "", fmt.Errorf("%w: %q is not an executable file", ErrToolNotFound, binary)
	}
	return binary, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			if forward != nil {
				forward(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
			// Drain so the child is not blocked on a full pipe.
			_, _ = io.Copy(io.Discard, r)
		}
	}

	wg.Add(2)
	go scan(stdout, onStdout)
	go scan(stderr, onStderr)
	wg.Wait()

	waitErr := cmd.Wait()
	if scanErr != nil {
		return fmt.Errorf("read output: %w", scanErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return waitErr
	}
	return nil
}
