// Package store writes a finished catalog dataset into a new SQLite database.
//
// Open creates the output file, applies the embedded schema and holds an
// exclusive flock on "<output>.lock" until Close so two conversions cannot
// target the same file. Write inserts every table inside one transaction;
// a failure leaves the schema in place with no rows.
//
// The database is a one-shot export. There are no migrations: schema changes
// bump schemaVersion and consumers regenerate the file.
package store
