package preflight

import (
	"errors"
	"fmt"

	"rdbsql/internal/config"
)

// Result captures the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every check for cfg in a stable order.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckTool(cfg.ToolBinary()),
		CheckSourceDirectory("RDB directory", cfg.Paths.RDBDir),
		CheckOutput(cfg.Paths.Output, cfg.Dataset.Overwrite),
	}
}

// Err folds failed results into one error, or nil when every check passed.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if !r.Passed {
			errs = append(errs, fmt.Errorf("%s: %s", r.Name, r.Detail))
		}
	}
	return errors.Join(errs...)
}
