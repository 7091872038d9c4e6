package libretrodb

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rdbsql/internal/logging"
)

// Extension is the suffix of catalog files.
const Extension = ".rdb"

// SourceFile is a catalog file on disk.
type SourceFile struct {
	// Name is the file name without the .rdb extension, e.g. "Sega - Saturn".
	Name string
	Path string
}

// ListSources returns the .rdb files directly inside dir, sorted by name.
// Other entries are logged and ignored.
func ListSources(dir string, logger *slog.Logger) ([]SourceFile, error) {
	logger = logging.NewComponentLogger(logger, "libretrodb")
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat rdb dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rdb dir %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read rdb dir: %w", err)
	}
	sources := make([]SourceFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), Extension) {
			logger.Info("skipping non-catalog entry", logging.String("entry", name))
			continue
		}
		if !entry.Type().IsRegular() {
			logger.Info("skipping irregular file", logging.String("entry", name))
			continue
		}
		sources = append(sources, SourceFile{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}
