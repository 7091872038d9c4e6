package catalog

import "strings"

// sourceSeparator splits "Manufacturer - Platform" source names.
const sourceSeparator = " - "

// DisplayName strips the trailing parenthesised tags from a full title:
// "Super Game (USA) (Rev 1)" becomes "Super Game". Titles without a '('
// are returned unchanged. A nil title, or one that is nothing but tags,
// yields nil.
func DisplayName(fullName *string) *string {
	if fullName == nil {
		return nil
	}
	idx := strings.IndexByte(*fullName, '(')
	if idx < 0 {
		name := *fullName
		return &name
	}
	name := strings.TrimSpace((*fullName)[:idx])
	if name == "" {
		return nil
	}
	return &name
}

// SplitSourceName derives manufacturer and platform from a source file stem.
// "Nintendo - Game Boy" yields ("Nintendo", "Game Boy"); a stem without the
// separator is all platform and has no manufacturer.
func SplitSourceName(stem string) (manufacturer *string, platform string) {
	before, after, found := strings.Cut(stem, sourceSeparator)
	if !found {
		return nil, stem
	}
	return &before, after
}

// Normalizer converts decoded records into candidates, resolving categorical
// fields through the shared registries.
type Normalizer struct {
	registries *Registries
}

// NewNormalizer binds a normalizer to registries owned by the caller.
func NewNormalizer(registries *Registries) *Normalizer {
	return &Normalizer{registries: registries}
}

// Normalize builds the candidate for rec on platformID. The only state it
// touches is the registries, which grow when rec carries unseen values.
func (n *Normalizer) Normalize(rec Record, platformID int64) Candidate {
	reg := n.registries
	return Candidate{
		Game: Game{
			DisplayName:  DisplayName(rec.Name),
			FullName:     rec.Name,
			Serial:       rec.Serial,
			DeveloperID:  reg.Developer.Resolve(rec.Developer),
			FranchiseID:  reg.Franchise.Resolve(rec.Franchise),
			PublisherID:  reg.Publisher.Resolve(rec.Publisher),
			RatingID:     reg.Rating.Resolve(rec.Rating),
			RegionID:     reg.Region.Resolve(rec.Region),
			GenreID:      reg.Genre.Resolve(rec.Genre),
			PlatformID:   platformID,
			ReleaseYear:  rec.ReleaseYear,
			ReleaseMonth: rec.ReleaseMonth,
			UserCount:    rec.Users,
		},
		ROM: ROM{
			Name:   rec.ROMName,
			MD5:    rec.MD5,
			Serial: rec.Serial,
		},
	}
}
