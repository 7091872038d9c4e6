// Package logging assembles the structured slog loggers used by rdbsql.
//
// It owns the console and JSON handlers, level and output plumbing, the
// standardized field keys, and helpers that attach a conversion run ID from
// the context. The console handler colors level labels only when writing to a
// terminal. A no-op logger is provided for tests and for library code that is
// handed a nil logger.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits lines with the same shape.
package logging
