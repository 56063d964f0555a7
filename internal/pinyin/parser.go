// Package pinyin annotates name characters with their pinyin readings for display.
package pinyin

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Parser looks up pinyin readings.
type Parser struct {
	args gopinyin.Args
}

// NewParser creates a new pinyin parser.
func NewParser() *Parser {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone // Returns tone marks: hào
	args.Heteronym = true      // Return all possible readings
	return &Parser{args: args}
}

// Reading holds every reading of one character.
type Reading struct {
	Char   string   `json:"char"`
	Pinyin []string `json:"pinyin,omitempty"`
}

// Primary returns the most common reading, or "" if none is known.
func (r Reading) Primary() string {
	if len(r.Pinyin) == 0 {
		return ""
	}
	return r.Pinyin[0]
}

// GetPinyin returns all pinyin readings for a character.
func (p *Parser) GetPinyin(char string) []string {
	result := gopinyin.Pinyin(char, p.args)
	if len(result) == 0 {
		return nil
	}
	return result[0]
}

// Annotate returns one Reading per character of s, in order.
func (p *Parser) Annotate(s string) []Reading {
	var out []Reading
	for _, r := range s {
		char := string(r)
		out = append(out, Reading{Char: char, Pinyin: p.GetPinyin(char)})
	}
	return out
}

// Romanize joins the primary reading of every character with spaces.
// Characters without a reading are kept as they are.
func (p *Parser) Romanize(s string) string {
	readings := p.Annotate(s)
	parts := make([]string, len(readings))
	for i, r := range readings {
		if primary := r.Primary(); primary != "" {
			parts[i] = primary
		} else {
			parts[i] = r.Char
		}
	}
	return strings.Join(parts, " ")
}
