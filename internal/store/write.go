package store

import (
	"context"
	"database/sql"
	"fmt"

	"rdbsql/internal/catalog"
	"rdbsql/internal/logging"
)

// Write inserts ds into the database in a single transaction. Lookup tables go
// first so foreign keys resolve. It returns the row count per table.
func (s *Store) Write(ctx context.Context, ds catalog.Dataset) (map[string]int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin write tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	counts := make(map[string]int)
	for _, category := range catalog.Categories {
		entries := ds.Lookup(category)
		table := string(category)
		err := insertRows(ctx, tx, table,
			fmt.Sprintf("INSERT INTO %s (id, name) VALUES (?, ?)", table),
			len(entries), func(i int) []any {
				return []any{entries[i].ID, entries[i].Name}
			})
		if err != nil {
			return nil, err
		}
		counts[table] = len(entries)
	}

	steps := []struct {
		table string
		query string
		n     int
		args  func(int) []any
	}{
		{
			table: "platform",
			query: "INSERT INTO platform (id, name, manufacturer_id, source) VALUES (?, ?, ?, ?)",
			n:     len(ds.Platforms),
			args: func(i int) []any {
				p := ds.Platforms[i]
				return []any{p.ID, p.Name, nullableInt(p.ManufacturerID), p.Source}
			},
		},
		{
			table: "rom",
			query: "INSERT INTO rom (id, name, md5, serial) VALUES (?, ?, ?, ?)",
			n:     len(ds.ROMs),
			args: func(i int) []any {
				r := ds.ROMs[i]
				return []any{r.ID, nullableString(r.Name), nullableString(r.MD5), nullableString(r.Serial)}
			},
		},
		{
			table: "game",
			query: `INSERT INTO game (
                id, display_name, full_name, serial, rom_id, developer_id, franchise_id,
                publisher_id, rating_id, region_id, genre_id, platform_id,
                release_year, release_month, user_count
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n: len(ds.Games),
			args: func(i int) []any {
				g := ds.Games[i]
				return []any{
					g.ID,
					nullableString(g.DisplayName),
					nullableString(g.FullName),
					nullableString(g.Serial),
					nullableInt(g.ROMID),
					nullableInt(g.DeveloperID),
					nullableInt(g.FranchiseID),
					nullableInt(g.PublisherID),
					nullableInt(g.RatingID),
					nullableInt(g.RegionID),
					nullableInt(g.GenreID),
					g.PlatformID,
					nullableInt(g.ReleaseYear),
					nullableInt(g.ReleaseMonth),
					nullableInt(g.UserCount),
				}
			},
		},
	}
	for _, step := range steps {
		if err := insertRows(ctx, tx, step.table, step.query, step.n, step.args); err != nil {
			return nil, err
		}
		counts[step.table] = step.n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit write: %w", err)
	}

	for _, table := range TableOrder {
		logging.Success(s.logger, fmt.Sprintf("inserted %d %s", counts[table], table),
			logging.String(logging.FieldTable, table),
			logging.Int("rows", counts[table]),
		)
	}
	return counts, nil
}

// TableOrder lists the data tables in insertion order.
var TableOrder = func() []string {
	order := make([]string, 0, len(catalog.Categories)+3)
	for _, category := range catalog.Categories {
		order = append(order, string(category))
	}
	return append(order, "platform", "rom", "game")
}()

func insertRows(ctx context.Context, tx *sql.Tx, table, query string, n int, args func(int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i+1, err)
		}
	}
	return nil
}
