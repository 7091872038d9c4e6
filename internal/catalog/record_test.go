package catalog_test

import (
	"testing"

	"rdbsql/internal/catalog"
)

func TestDecodeRecordTreatsNullAndEmptyAsAbsent(t *testing.T) {
	rec, err := catalog.DecodeRecord([]byte(`{"name":"","developer":null,"releaseyear":"","md5":"ff00"}`))
	if err != nil {
		t.Fatalf("DecodeRecord returned error: %v", err)
	}
	if rec.Name != nil || rec.Developer != nil || rec.ReleaseYear != nil {
		t.Fatalf("expected absent fields, got %+v", rec)
	}
	if rec.MD5 == nil || *rec.MD5 != "ff00" {
		t.Fatalf("expected md5, got %v", rec.MD5)
	}
}

func TestDecodeRecordScalarCoercion(t *testing.T) {
	rec, err := catalog.DecodeRecord([]byte(`{"serial":12345,"releaseyear":1995.0,"releasemonth":" 7 ","users":3}`))
	if err != nil {
		t.Fatalf("DecodeRecord returned error: %v", err)
	}
	if *rec.Serial != "12345" {
		t.Fatalf("expected numeric serial kept as text, got %q", *rec.Serial)
	}
	if *rec.ReleaseYear != 1995 || *rec.ReleaseMonth != 7 || *rec.Users != 3 {
		t.Fatalf("unexpected numbers: year=%d month=%d users=%d", *rec.ReleaseYear, *rec.ReleaseMonth, *rec.Users)
	}
}

func TestDecodeRecordRatingFallsBackToPlainKey(t *testing.T) {
	rec, err := catalog.DecodeRecord([]byte(`{"rating":"PEGI 3"}`))
	if err != nil {
		t.Fatalf("DecodeRecord returned error: %v", err)
	}
	if rec.Rating == nil || *rec.Rating != "PEGI 3" {
		t.Fatalf("expected rating fallback, got %v", rec.Rating)
	}

	rec, err = catalog.DecodeRecord([]byte(`{"rating":"PEGI 3","esrb_rating":"E"}`))
	if err != nil {
		t.Fatalf("DecodeRecord returned error: %v", err)
	}
	if *rec.Rating != "E" {
		t.Fatalf("expected esrb_rating to win, got %q", *rec.Rating)
	}
}

func TestDecodeRecordRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"truncated":       `{"name":"Broken"`,
		"not json":        `name=Broken`,
		"array":           `["name"]`,
		"null":            `null`,
		"empty":           ``,
		"object field":    `{"developer":{"name":"Acme"}}`,
		"fractional year": `{"releaseyear":1995.5}`,
		"text month":      `{"releasemonth":"March"}`,
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := catalog.DecodeRecord([]byte(line)); err == nil {
				t.Fatalf("expected error for %q", line)
			}
		})
	}
}
