// Package catalog turns libretro catalog records into a relational dataset.
//
// Raw records arrive one JSON object per line, grouped by the source .rdb file
// they were listed from. The Assembler derives a Platform per source, runs each
// line through the Normalizer (which resolves categorical strings such as
// developer or genre to surrogate IDs through per-category Registries) and
// hands the resulting Candidate to the merge Engine. The Engine de-duplicates
// games on a run-wide uniqueness key (ROM checksum or serial) and merges
// duplicates field by field: whatever was filled first stays.
//
// Nothing here performs I/O. Callers stream lines in, read the finished
// Dataset out, and own persistence. Processing is strictly sequential because
// ID assignment and merge precedence depend on delivery order; none of the
// types in this package are safe for concurrent use.
package catalog
