package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"rdbsql/internal/logging"
)

var (
	// ErrOutputExists is returned by Open when the output file is present and
	// overwriting was not requested.
	ErrOutputExists = errors.New("output database already exists")
	// ErrLocked is returned by Open when another process holds the output lock.
	ErrLocked = errors.New("output database is locked by another process")
)

// Options configures Open.
type Options struct {
	Overwrite bool
	Logger    *slog.Logger
}

// Store is an open output database.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open creates a fresh database at path with the schema applied.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("output path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	release := func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}

	if err := prepareOutput(path, opts.Overwrite); err != nil {
		release()
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		release()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = OFF",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			release()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:     db,
		path:   path,
		lock:   lock,
		logger: logging.NewComponentLogger(opts.Logger, "store"),
	}
	if err := store.createSchema(ctx); err != nil {
		_ = db.Close()
		release()
		return nil, err
	}
	return store, nil
}

// NewWithDB wraps an existing connection whose schema is already in place.
// No lock is taken.
func NewWithDB(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logging.NewComponentLogger(logger, "store")}
}

func prepareOutput(path string, overwrite bool) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("output %q is a directory", path)
	}
	if !overwrite {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	for _, stale := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove existing output: %w", err)
		}
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying connection for read-back in tests and tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database and releases the output lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = fmt.Errorf("release lock: %w", unlockErr)
		}
		_ = os.Remove(s.lock.Path())
	}
	return err
}
