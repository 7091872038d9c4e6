package catalog

// Platform is the system a source file catalogs. One per source file.
type Platform struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ManufacturerID *int64 `json:"manufacturer_id,omitempty"`
	Source         string `json:"source"`
}

// ROM carries the identity data of a physical medium.
type ROM struct {
	ID     int64   `json:"id"`
	Name   *string `json:"name,omitempty"`
	MD5    *string `json:"md5,omitempty"`
	Serial *string `json:"serial,omitempty"`
}

// Game is one logical title on one platform. Foreign keys point into the
// lookup tables, the platform list and the ROM list.
type Game struct {
	ID           int64   `json:"id"`
	DisplayName  *string `json:"display_name,omitempty"`
	FullName     *string `json:"full_name,omitempty"`
	Serial       *string `json:"serial,omitempty"`
	ROMID        *int64  `json:"rom_id,omitempty"`
	DeveloperID  *int64  `json:"developer_id,omitempty"`
	FranchiseID  *int64  `json:"franchise_id,omitempty"`
	PublisherID  *int64  `json:"publisher_id,omitempty"`
	RatingID     *int64  `json:"rating_id,omitempty"`
	RegionID     *int64  `json:"region_id,omitempty"`
	GenreID      *int64  `json:"genre_id,omitempty"`
	PlatformID   int64   `json:"platform_id"`
	ReleaseYear  *int64  `json:"release_year,omitempty"`
	ReleaseMonth *int64  `json:"release_month,omitempty"`
	UserCount    *int64  `json:"user_count,omitempty"`
}

// Candidate is a normalized record that has not been merged yet. IDs on the
// game and ROM are zero until the Engine assigns them.
type Candidate struct {
	Game Game
	ROM  ROM
}
