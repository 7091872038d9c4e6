package catalog

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"rdbsql/internal/logging"
)

// ErrDuplicateSource reports a source name that was already processed.
var ErrDuplicateSource = errors.New("source already processed")

// Source is one catalog file: its stem (e.g. "Nintendo - Game Boy") and the
// lines the catalog tool printed for it, in output order.
type Source struct {
	Name  string
	Lines iter.Seq[string]
}

// ParseError records a line that was skipped because it could not be decoded.
type ParseError struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Err    error  `json:"-"`
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Source, e.Line, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// SourceStats summarizes one ProcessSource call.
type SourceStats struct {
	Source     string `json:"source"`
	PlatformID int64  `json:"platform_id"`
	Records    int    `json:"records"`
	NewGames   int    `json:"new_games"`
	Merged     int    `json:"merged"`
	Skipped    int    `json:"skipped"`
}

// Options configures an Assembler.
type Options struct {
	Key    KeyPolicy
	Logger *slog.Logger
}

// Assembler owns every table of a conversion run until Dataset hands out a
// snapshot.
type Assembler struct {
	registries *Registries
	normalizer *Normalizer
	engine     *Engine
	platforms  []Platform
	sources    mapset.Set[string]
	skipped    []ParseError
	logger     *slog.Logger
}

// NewAssembler returns an empty assembler.
func NewAssembler(opts Options) *Assembler {
	registries := NewRegistries()
	return &Assembler{
		registries: registries,
		normalizer: NewNormalizer(registries),
		engine:     NewEngine(opts.Key),
		sources:    mapset.NewThreadUnsafeSet[string](),
		logger:     logging.NewComponentLogger(opts.Logger, "catalog"),
	}
}

// Process runs every source through ProcessSource in order and returns the
// finished dataset. It stops at the first source error.
func (a *Assembler) Process(sources ...Source) (Dataset, error) {
	for _, src := range sources {
		if _, err := a.ProcessSource(src); err != nil {
			return Dataset{}, err
		}
	}
	return a.Dataset(), nil
}

// ProcessSource registers the platform for src and ingests its lines. Lines
// that fail to decode are logged, recorded and skipped; blank lines are
// ignored.
func (a *Assembler) ProcessSource(src Source) (SourceStats, error) {
	platform, err := a.addPlatform(src.Name)
	if err != nil {
		return SourceStats{}, err
	}

	stats := SourceStats{Source: src.Name, PlatformID: platform.ID}
	logger := a.logger.With(logging.String(logging.FieldSource, src.Name))
	if src.Lines == nil {
		return stats, nil
	}

	lineNo := 0
	for line := range src.Lines {
		lineNo++
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := DecodeRecord([]byte(line))
		if err != nil {
			stats.Skipped++
			a.skipped = append(a.skipped, ParseError{Source: src.Name, Line: lineNo, Err: err})
			logging.WarnWithContext(logger, "skipping malformed record", "record_decode_failed",
				logging.Int(logging.FieldLine, lineNo),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "inspect the catalog tool output for this line"),
				logging.String(logging.FieldImpact, "record excluded from the dataset"),
			)
			logger.Debug("malformed record text", logging.String("raw", line))
			continue
		}
		stats.Records++
		if a.engine.Upsert(a.normalizer.Normalize(rec, platform.ID)) {
			stats.NewGames++
		} else {
			stats.Merged++
		}
	}

	logger.Info("source processed",
		logging.Int64("platform_id", platform.ID),
		logging.Int("records", stats.Records),
		logging.Int("new_games", stats.NewGames),
		logging.Int("merged", stats.Merged),
		logging.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func (a *Assembler) addPlatform(source string) (Platform, error) {
	if strings.TrimSpace(source) == "" {
		return Platform{}, errors.New("source name required")
	}
	if !a.sources.Add(source) {
		return Platform{}, fmt.Errorf("%w: %s", ErrDuplicateSource, source)
	}
	manufacturer, name := SplitSourceName(source)
	platform := Platform{
		ID:             int64(len(a.platforms) + 1),
		Name:           name,
		ManufacturerID: a.registries.Manufacturer.Resolve(manufacturer),
		Source:         source,
	}
	a.platforms = append(a.platforms, platform)
	return platform, nil
}

// Dataset snapshots the current tables. Later ProcessSource calls do not
// affect a snapshot already taken.
func (a *Assembler) Dataset() Dataset {
	lookups := make(map[Category][]Entry, len(Categories))
	for _, category := range Categories {
		lookups[category] = a.registries.For(category).Entries()
	}
	platforms := make([]Platform, len(a.platforms))
	copy(platforms, a.platforms)
	skipped := make([]ParseError, len(a.skipped))
	copy(skipped, a.skipped)
	return Dataset{
		Key:       a.engine.Policy(),
		Lookups:   lookups,
		Platforms: platforms,
		Games:     a.engine.Games(),
		ROMs:      a.engine.ROMs(),
		Skipped:   skipped,
	}
}
