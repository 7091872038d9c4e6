package catalog

import "fmt"

// KeyPolicy selects the field that identifies a game for the whole run.
type KeyPolicy string

const (
	// KeyChecksum de-duplicates on the ROM md5. Games and ROMs are 1:1 and
	// share IDs.
	KeyChecksum KeyPolicy = "md5"
	// KeySerial de-duplicates on the game serial. ROMs get their own ID space
	// and every line carrying a checksum adds one.
	KeySerial KeyPolicy = "serial"
)

// ParseKeyPolicy maps a configuration value to a KeyPolicy. Empty means
// KeyChecksum.
func ParseKeyPolicy(value string) (KeyPolicy, error) {
	switch KeyPolicy(value) {
	case "", KeyChecksum:
		return KeyChecksum, nil
	case KeySerial:
		return KeySerial, nil
	default:
		return "", fmt.Errorf("unknown key policy %q (want %q or %q)", value, KeyChecksum, KeySerial)
	}
}

// Key extracts the uniqueness key from c. Empty when c does not carry it.
func (p KeyPolicy) Key(c Candidate) string {
	var key *string
	switch p {
	case KeySerial:
		key = c.Game.Serial
	default:
		key = c.ROM.MD5
	}
	if key == nil {
		return ""
	}
	return *key
}

// MergeGames fills the empty fields of existing from incoming. Fields that are
// already set on existing are kept even when incoming disagrees.
func MergeGames(existing, incoming Game) Game {
	merged := existing
	merged.DisplayName = firstString(existing.DisplayName, incoming.DisplayName)
	merged.FullName = firstString(existing.FullName, incoming.FullName)
	merged.Serial = firstString(existing.Serial, incoming.Serial)
	merged.ROMID = firstInt(existing.ROMID, incoming.ROMID)
	merged.DeveloperID = firstInt(existing.DeveloperID, incoming.DeveloperID)
	merged.FranchiseID = firstInt(existing.FranchiseID, incoming.FranchiseID)
	merged.PublisherID = firstInt(existing.PublisherID, incoming.PublisherID)
	merged.RatingID = firstInt(existing.RatingID, incoming.RatingID)
	merged.RegionID = firstInt(existing.RegionID, incoming.RegionID)
	merged.GenreID = firstInt(existing.GenreID, incoming.GenreID)
	merged.ReleaseYear = firstInt(existing.ReleaseYear, incoming.ReleaseYear)
	merged.ReleaseMonth = firstInt(existing.ReleaseMonth, incoming.ReleaseMonth)
	merged.UserCount = firstInt(existing.UserCount, incoming.UserCount)
	if merged.PlatformID == 0 {
		merged.PlatformID = incoming.PlatformID
	}
	return merged
}

// MergeROMs is MergeGames for the ROM attached to a game.
func MergeROMs(existing, incoming ROM) ROM {
	merged := existing
	merged.Name = firstString(existing.Name, incoming.Name)
	merged.MD5 = firstString(existing.MD5, incoming.MD5)
	merged.Serial = firstString(existing.Serial, incoming.Serial)
	return merged
}

func firstString(existing, incoming *string) *string {
	if existing != nil && *existing != "" {
		return existing
	}
	if incoming != nil && *incoming != "" {
		return incoming
	}
	return existing
}

func firstInt(existing, incoming *int64) *int64 {
	if existing != nil {
		return existing
	}
	return incoming
}

// Engine holds the games seen so far and upserts candidates into them.
type Engine struct {
	policy KeyPolicy
	games  []Game
	roms   []ROM
	index  map[string]int
}

// NewEngine returns an empty engine keyed by policy.
func NewEngine(policy KeyPolicy) *Engine {
	if policy == "" {
		policy = KeyChecksum
	}
	return &Engine{policy: policy, index: make(map[string]int)}
}

// Policy reports the key policy the engine de-duplicates on.
func (e *Engine) Policy() KeyPolicy {
	return e.policy
}

// Upsert merges c into the game sharing its key, or appends it as a new game.
// It reports whether a new game was created. Candidates without a key never
// match anything and always become new games.
func (e *Engine) Upsert(c Candidate) bool {
	if e.policy == KeySerial {
		c.Game.ROMID = e.appendIndependentROM(c.ROM)
	}

	key := e.policy.Key(c)
	if key != "" {
		if pos, ok := e.index[key]; ok {
			e.games[pos] = MergeGames(e.games[pos], c.Game)
			if e.policy == KeyChecksum {
				e.roms[pos] = MergeROMs(e.roms[pos], c.ROM)
			}
			return false
		}
	}

	id := int64(len(e.games) + 1)
	game := c.Game
	game.ID = id
	if e.policy == KeyChecksum {
		rom := c.ROM
		rom.ID = id
		romID := id
		game.ROMID = &romID
		e.roms = append(e.roms, rom)
	}
	e.games = append(e.games, game)
	if key != "" {
		e.index[key] = len(e.games) - 1
	}
	return true
}

// appendIndependentROM records rom under the next ROM ID when it carries a
// checksum and returns that ID.
func (e *Engine) appendIndependentROM(rom ROM) *int64 {
	if rom.MD5 == nil || *rom.MD5 == "" {
		return nil
	}
	id := int64(len(e.roms) + 1)
	rom.ID = id
	e.roms = append(e.roms, rom)
	return &id
}

// Games returns a copy of the games in ID order.
func (e *Engine) Games() []Game {
	out := make([]Game, len(e.games))
	copy(out, e.games)
	return out
}

// ROMs returns a copy of the ROMs in ID order.
func (e *Engine) ROMs() []ROM {
	out := make([]ROM, len(e.roms))
	copy(out, e.roms)
	return out
}
