package testsupport

import (
	"context"
	"testing"

	"rdbsql/internal/config"
	"rdbsql/internal/store"
)

// MustOpenStore opens the configured output database for tests and registers
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(context.Background(), cfg.Paths.Output, store.Options{Overwrite: cfg.Dataset.Overwrite})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// CountRows returns the number of rows in table.
func CountRows(t testing.TB, st *store.Store, table string) int {
	t.Helper()

	var n int
	if err := st.DB().QueryRow("SELECT COUNT(1) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
