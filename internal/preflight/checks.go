package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"rdbsql/internal/libretrodb"
)

// CheckTool verifies that the libretrodb_tool binary resolves to an executable.
func CheckTool(binary string) Result {
	const name = "libretrodb_tool"
	resolved, err := libretrodb.ResolveTool(binary)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckSourceDirectory verifies that the directory exists and can be listed.
func CheckSourceDirectory(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckOutput verifies that path may be created. The nearest existing parent
// must be writable, and an existing file is only accepted with overwrite.
func CheckOutput(path string, overwrite bool) Result {
	const name = "Output"
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	case err == nil && !overwrite:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: already exists; set dataset.overwrite or pass --overwrite)", path)}
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	parent := nearestExistingDir(filepath.Dir(path))
	if accessErr := unix.Access(parent, unix.W_OK|unix.X_OK); accessErr != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s not writable: %v)", path, parent, accessErr)}
	}
	if err == nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be replaced)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
}

func nearestExistingDir(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
