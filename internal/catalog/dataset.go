package catalog

// Dataset is the finished relational output of a run.
type Dataset struct {
	Key       KeyPolicy
	Lookups   map[Category][]Entry
	Platforms []Platform
	Games     []Game
	ROMs      []ROM
	Skipped   []ParseError
}

// Lookup returns the entries of one lookup table in ID order.
func (d Dataset) Lookup(category Category) []Entry {
	return d.Lookups[category]
}

// Counts reports the row count per table, keyed by table name.
func (d Dataset) Counts() map[string]int {
	counts := make(map[string]int, len(Categories)+3)
	for _, category := range Categories {
		counts[string(category)] = len(d.Lookups[category])
	}
	counts["platform"] = len(d.Platforms)
	counts["game"] = len(d.Games)
	counts["rom"] = len(d.ROMs)
	return counts
}
