package catalog_test

import (
	"testing"

	"rdbsql/internal/catalog"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name string
		in   *string
		want *string
	}{
		{"tags stripped", strPtr("Super Game (USA) (Rev 1)"), strPtr("Super Game")},
		{"plain title", strPtr("Plain Title"), strPtr("Plain Title")},
		{"absent", nil, nil},
		{"untrimmed without tags", strPtr(" Spaced "), strPtr(" Spaced ")},
		{"only tags", strPtr("(Prototype)"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := catalog.DisplayName(tc.in)
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("expected nil, got %q", *got)
			case tc.want != nil && (got == nil || *got != *tc.want):
				t.Fatalf("DisplayName = %v, want %q", got, *tc.want)
			}
		})
	}
}

func TestSplitSourceName(t *testing.T) {
	cases := []struct {
		stem         string
		manufacturer *string
		platform     string
	}{
		{"Nintendo - Game Boy", strPtr("Nintendo"), "Game Boy"},
		{"Arcade", nil, "Arcade"},
		{"Sega - Mega Drive - Genesis", strPtr("Sega"), "Mega Drive - Genesis"},
	}
	for _, tc := range cases {
		manufacturer, platform := catalog.SplitSourceName(tc.stem)
		if platform != tc.platform {
			t.Fatalf("%q: platform = %q, want %q", tc.stem, platform, tc.platform)
		}
		switch {
		case tc.manufacturer == nil && manufacturer != nil:
			t.Fatalf("%q: expected no manufacturer, got %q", tc.stem, *manufacturer)
		case tc.manufacturer != nil && (manufacturer == nil || *manufacturer != *tc.manufacturer):
			t.Fatalf("%q: manufacturer = %v, want %q", tc.stem, manufacturer, *tc.manufacturer)
		}
	}
}

func TestNormalizeResolvesCategoriesAndPassesThroughValues(t *testing.T) {
	regs := catalog.NewRegistries()
	regs.Genre.Resolve(strPtr("Shooter"))
	normalizer := catalog.NewNormalizer(regs)

	rec, err := catalog.DecodeRecord([]byte(`{"name":"Blaster (Europe)","serial":"SLES-001","md5":"ABCD","rom_name":"blaster.bin",` +
		`"developer":"Acme","publisher":"MegaCorp","franchise":"Blaster","region":"Europe","genre":"Action",` +
		`"esrb_rating":"T","releaseyear":1998,"releasemonth":"4","users":12}`))
	if err != nil {
		t.Fatalf("DecodeRecord returned error: %v", err)
	}

	c := normalizer.Normalize(rec, 7)
	g := c.Game
	if g.ID != 0 || c.ROM.ID != 0 {
		t.Fatal("expected IDs to be left for the engine")
	}
	if *g.DisplayName != "Blaster" || *g.FullName != "Blaster (Europe)" || *g.Serial != "SLES-001" {
		t.Fatalf("unexpected names: %+v", g)
	}
	if *g.DeveloperID != 1 || *g.PublisherID != 1 || *g.FranchiseID != 1 || *g.RegionID != 1 || *g.RatingID != 1 {
		t.Fatalf("expected first IDs for fresh categories: %+v", g)
	}
	if *g.GenreID != 2 {
		t.Fatalf("expected Action to follow pre-seeded Shooter, got %d", *g.GenreID)
	}
	if g.PlatformID != 7 || *g.ReleaseYear != 1998 || *g.ReleaseMonth != 4 || *g.UserCount != 12 {
		t.Fatalf("unexpected pass-through values: %+v", g)
	}
	if *c.ROM.Name != "blaster.bin" || *c.ROM.MD5 != "ABCD" || *c.ROM.Serial != "SLES-001" {
		t.Fatalf("unexpected ROM: %+v", c.ROM)
	}
}

func TestNormalizeLeavesMissingFieldsAbsent(t *testing.T) {
	regs := catalog.NewRegistries()
	c := catalog.NewNormalizer(regs).Normalize(catalog.Record{}, 1)
	g := c.Game

	if g.DisplayName != nil || g.FullName != nil || g.Serial != nil || g.DeveloperID != nil ||
		g.FranchiseID != nil || g.PublisherID != nil || g.RatingID != nil || g.RegionID != nil ||
		g.GenreID != nil || g.ReleaseYear != nil || g.ReleaseMonth != nil || g.UserCount != nil {
		t.Fatalf("expected all optional fields nil, got %+v", g)
	}
	if c.ROM.Name != nil || c.ROM.MD5 != nil || c.ROM.Serial != nil {
		t.Fatalf("expected empty ROM, got %+v", c.ROM)
	}
	for _, category := range catalog.Categories {
		if regs.For(category).Len() != 0 {
			t.Fatalf("registry %s grew from an empty record", category)
		}
	}
}
