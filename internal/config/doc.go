// Package config loads, normalizes, and validates rdbsql configuration.
//
// It supplies repository defaults, reads TOML files (rdbsql.toml in the
// working directory, then ~/.config/rdbsql/config.toml), applies RDBSQL_*
// environment overrides and expands user paths including tilde shortcuts.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
