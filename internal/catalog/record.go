package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one decoded line of catalog tool output. Every field is optional;
// a key missing from the JSON object, an explicit null, and an empty string
// all decode to nil.
type Record struct {
	Name         *string
	Serial       *string
	MD5          *string
	ROMName      *string
	Developer    *string
	Publisher    *string
	Franchise    *string
	Region       *string
	Genre        *string
	Rating       *string
	ReleaseYear  *int64
	ReleaseMonth *int64
	Users        *int64
}

// JSON keys emitted by libretrodb_tool.
const (
	keyName         = "name"
	keySerial       = "serial"
	keyMD5          = "md5"
	keyROMName      = "rom_name"
	keyDeveloper    = "developer"
	keyPublisher    = "publisher"
	keyFranchise    = "franchise"
	keyRegion       = "region"
	keyGenre        = "genre"
	keyESRBRating   = "esrb_rating"
	keyRating       = "rating"
	keyReleaseYear  = "releaseyear"
	keyReleaseMonth = "releasemonth"
	keyUsers        = "users"
)

var errNotObject = errors.New("record is not a JSON object")

// DecodeRecord parses one line of tool output.
func DecodeRecord(line []byte) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(line), &fields); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if fields == nil {
		return Record{}, errNotObject
	}

	d := fieldDecoder{fields: fields}
	rec := Record{
		Name:         d.str(keyName),
		Serial:       d.str(keySerial),
		MD5:          d.str(keyMD5),
		ROMName:      d.str(keyROMName),
		Developer:    d.str(keyDeveloper),
		Publisher:    d.str(keyPublisher),
		Franchise:    d.str(keyFranchise),
		Region:       d.str(keyRegion),
		Genre:        d.str(keyGenre),
		Rating:       d.str(keyESRBRating),
		ReleaseYear:  d.int(keyReleaseYear),
		ReleaseMonth: d.int(keyReleaseMonth),
		Users:        d.int(keyUsers),
	}
	if rec.Rating == nil {
		rec.Rating = d.str(keyRating)
	}
	if d.err != nil {
		return Record{}, d.err
	}
	return rec, nil
}

// fieldDecoder extracts typed optional values and keeps the first error.
type fieldDecoder struct {
	fields map[string]json.RawMessage
	err    error
}

func (d *fieldDecoder) str(key string) *string {
	raw, ok := d.fields[key]
	if !ok || d.err != nil {
		return nil
	}
	value, err := scalarString(raw)
	if err != nil {
		d.err = fmt.Errorf("field %q: %w", key, err)
		return nil
	}
	return value
}

func (d *fieldDecoder) int(key string) *int64 {
	raw, ok := d.fields[key]
	if !ok || d.err != nil {
		return nil
	}
	value, err := scalarInt(raw)
	if err != nil {
		d.err = fmt.Errorf("field %q: %w", key, err)
		return nil
	}
	return value
}

// scalarString accepts strings, numbers and booleans. Non-string scalars keep
// their JSON spelling.
func scalarString(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return &s, nil
	case '{', '[':
		return nil, errors.New("expected a scalar value")
	default:
		s := string(raw)
		return &s, nil
	}
}

// scalarInt accepts integral JSON numbers and numeric strings.
func scalarInt(raw json.RawMessage) (*int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		text = strings.TrimSpace(s)
		if text == "" {
			return nil, nil
		}
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return nil, fmt.Errorf("expected an integer, got %s", text)
	}
	n := int64(f)
	return &n, nil
}
