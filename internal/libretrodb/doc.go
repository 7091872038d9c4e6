// Package libretrodb wraps the libretrodb_tool CLI that dumps RetroArch .rdb
// catalogs as JSON lines.
//
// ListSources discovers catalog files in a directory and Client.List runs the
// tool against one of them. Command execution sits behind the Executor
// interface so tests can feed canned output without the real binary.
package libretrodb
