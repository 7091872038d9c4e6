package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"

	"rdbsql/internal/catalog"
	"rdbsql/internal/config"
	"rdbsql/internal/libretrodb"
	"rdbsql/internal/logging"
	"rdbsql/internal/preflight"
	"rdbsql/internal/store"
)

// ErrNoSources is returned when the rdb directory holds no catalog files.
var ErrNoSources = errors.New("no .rdb files found")

// SkippedLine is a tool output line that could not be decoded.
type SkippedLine struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Error  string `json:"error"`
}

// Summary describes a finished conversion.
type Summary struct {
	RunID    string                `json:"run_id"`
	Output   string                `json:"output"`
	Key      catalog.KeyPolicy     `json:"key"`
	Sources  []catalog.SourceStats `json:"sources"`
	Counts   map[string]int        `json:"counts"`
	Skipped  []SkippedLine         `json:"skipped"`
	Duration time.Duration         `json:"duration_ns"`
}

// Records returns the number of decoded records across all sources.
func (s Summary) Records() int {
	total := 0
	for _, src := range s.Sources {
		total += src.Records
	}
	return total
}

// Run converts every catalog in cfg.Paths.RDBDir into cfg.Paths.Output.
// Extra client options are passed to the libretrodb client.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...libretrodb.Option) (Summary, error) {
	if cfg == nil {
		return Summary{}, errors.New("config required")
	}
	start := time.Now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "convert"))

	policy, err := catalog.ParseKeyPolicy(cfg.Dataset.Key)
	if err != nil {
		return Summary{}, err
	}
	if err := preflight.Err(preflight.RunAll(cfg)); err != nil {
		return Summary{}, fmt.Errorf("preflight: %w", err)
	}
	tool, err := libretrodb.ResolveTool(cfg.ToolBinary())
	if err != nil {
		return Summary{}, err
	}
	client, err := libretrodb.New(tool, cfg.Tool.TimeoutSeconds,
		append([]libretrodb.Option{libretrodb.WithLogger(logger)}, opts...)...)
	if err != nil {
		return Summary{}, err
	}

	sources, err := libretrodb.ListSources(cfg.Paths.RDBDir, logger)
	if err != nil {
		return Summary{}, err
	}
	if len(sources) == 0 {
		return Summary{}, fmt.Errorf("%w in %s", ErrNoSources, cfg.Paths.RDBDir)
	}
	logger.Info("conversion started",
		logging.String("rdb_dir", cfg.Paths.RDBDir),
		logging.String("output", cfg.Paths.Output),
		logging.String("key", string(policy)),
		logging.Int("sources", len(sources)),
	)

	st, err := store.Open(ctx, cfg.Paths.Output, store.Options{Overwrite: cfg.Dataset.Overwrite, Logger: logger})
	if err != nil {
		return Summary{}, err
	}
	summary, err := convert(ctx, client, st, sources, policy, logger)
	closeErr := st.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}
	if err != nil {
		if removeErr := os.Remove(cfg.Paths.Output); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logging.WarnWithContext(logger, "failed to remove partial output", "output_cleanup_failed",
				logging.Error(removeErr),
				logging.String(logging.FieldErrorHint, "delete the output file before rerunning"),
			)
		}
		return Summary{}, err
	}

	summary.RunID = runID
	summary.Output = cfg.Paths.Output
	summary.Duration = time.Since(start)
	logging.Success(logger, "conversion complete",
		logging.Int("games", summary.Counts["game"]),
		logging.Int("roms", summary.Counts["rom"]),
		logging.Int("skipped", len(summary.Skipped)),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func convert(ctx context.Context, client *libretrodb.Client, st *store.Store, sources []libretrodb.SourceFile, policy catalog.KeyPolicy, logger *slog.Logger) (Summary, error) {
	asm := catalog.NewAssembler(catalog.Options{Key: policy, Logger: logger})
	stats := make([]catalog.SourceStats, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		lines, err := client.List(ctx, src.Path)
		if err != nil {
			return Summary{}, err
		}
		s, err := asm.ProcessSource(catalog.Source{Name: src.Name, Lines: slices.Values(lines)})
		if err != nil {
			return Summary{}, err
		}
		stats = append(stats, s)
	}

	ds := asm.Dataset()
	counts, err := st.Write(ctx, ds)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Key:     ds.Key,
		Sources: stats,
		Counts:  counts,
		Skipped: skippedLines(ds.Skipped),
	}, nil
}

func skippedLines(errs []catalog.ParseError) []SkippedLine {
	out := make([]SkippedLine, 0, len(errs))
	for _, e := range errs {
		out = append(out, SkippedLine{Source: e.Source, Line: e.Line, Error: e.Err.Error()})
	}
	return out
}
