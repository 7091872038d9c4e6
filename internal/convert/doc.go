// Package convert runs one end-to-end conversion: preflight, catalog
// discovery, tool invocation per file, dataset assembly and the SQLite write.
//
// Run owns the output database for its whole duration. A run that fails after
// the database was created removes it again so a half-written file is never
// mistaken for a finished export.
package convert
