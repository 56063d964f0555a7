// Package dict holds the stroke-count reference dictionary of standard characters.
package dict

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Strokes holds the three stroke counts a record may carry. Zero means absent.
type Strokes struct {
	Kangxi      int `json:"kangxi,omitempty"`
	Traditional int `json:"traditional,omitempty"`
	Simplified  int `json:"simplified,omitempty"`
}

// Record is a single entry of the dictionary resource.
type Record struct {
	Char    string  `json:"char"`
	Strokes Strokes `json:"strokes"`
}

// Dictionary is an immutable character-keyed lookup. It is safe for concurrent readers.
type Dictionary struct {
	entries map[string]Record
	version string
}

// FromRecords builds a dictionary keyed by each record's Char.
func FromRecords(records ...Record) *Dictionary {
	d := &Dictionary{
		entries: make(map[string]Record, len(records)),
		version: "static",
	}
	for _, r := range records {
		d.entries[r.Char] = r
	}
	return d
}

// Lookup returns the record stored under char.
func (d *Dictionary) Lookup(char string) (Record, bool) {
	r, ok := d.entries[char]
	return r, ok
}

// Size returns the number of entries in the dictionary.
func (d *Dictionary) Size() int {
	return len(d.entries)
}

// Version identifies the resource snapshot the dictionary was parsed from.
func (d *Dictionary) Version() string {
	return d.version
}

var strokeFields = [...]string{"kangxi", "traditional", "simplified"}

// Parse validates and decodes a dictionary resource.
//
// The resource is a JSON object keyed by character whose values look like
// {"char": "浩", "strokes": {"kangxi": 11, "traditional": 10, "simplified": 10}}.
// Structural problems reject the whole resource. Records that are well formed but
// unusable (identity mismatch, no positive stroke field) are kept and left to lookup.
func Parse(data []byte) (*Dictionary, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("dictionary is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("dictionary root must be an object keyed by character")
	}

	d := &Dictionary{entries: make(map[string]Record)}
	var parseErr error
	root.ForEach(func(key, value gjson.Result) bool {
		rec, err := parseRecord(value)
		if err != nil {
			parseErr = fmt.Errorf("entry %q: %w", key.String(), err)
			return false
		}
		d.entries[key.String()] = rec
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	sum := sha256.Sum256(data)
	d.version = hex.EncodeToString(sum[:])[:12]
	return d, nil
}

func parseRecord(v gjson.Result) (Record, error) {
	if !v.IsObject() {
		return Record{}, fmt.Errorf("must be an object")
	}

	var rec Record
	if c := v.Get("char"); c.Exists() && c.Type != gjson.Null {
		if c.Type != gjson.String {
			return Record{}, fmt.Errorf("char must be a string")
		}
		rec.Char = c.String()
	}

	s := v.Get("strokes")
	if !s.Exists() || s.Type == gjson.Null {
		return rec, nil
	}
	if !s.IsObject() {
		return Record{}, fmt.Errorf("strokes must be an object")
	}

	var counts [len(strokeFields)]int
	for i, name := range strokeFields {
		f := s.Get(name)
		if !f.Exists() || f.Type == gjson.Null {
			continue
		}
		if f.Type != gjson.Number {
			return Record{}, fmt.Errorf("strokes.%s must be a number", name)
		}
		if f.Num < 0 || f.Num != math.Trunc(f.Num) || f.Num > math.MaxInt32 {
			return Record{}, fmt.Errorf("strokes.%s must be a non-negative integer, got %v", name, f.Num)
		}
		counts[i] = int(f.Num)
	}
	rec.Strokes = Strokes{Kangxi: counts[0], Traditional: counts[1], Simplified: counts[2]}
	return rec, nil
}
