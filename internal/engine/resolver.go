package engine

import (
	"github.com/f3rmion/sancai/internal/dict"
	"github.com/f3rmion/sancai/internal/sancai"
)

// Stroke sources, in precedence order.
const (
	SourceKangxi      = "kangxi"
	SourceTraditional = "traditional"
	SourceSimplified  = "simplified"
)

// Lookuper is the part of a dictionary the resolver needs.
type Lookuper interface {
	Lookup(char string) (dict.Record, bool)
}

// Resolver turns a single character into its authoritative stroke count.
type Resolver struct {
	dict Lookuper
}

// NewResolver creates a resolver over d.
func NewResolver(d Lookuper) Resolver {
	return Resolver{dict: d}
}

// Resolve returns the stroke count of char using kangxi, then traditional, then
// simplified strokes; the first positive field wins. It reports false when char is
// missing, when the stored record belongs to another character, or when no field is
// positive.
func (r Resolver) Resolve(char string) (sancai.CharStrokes, bool) {
	rec, ok := r.dict.Lookup(char)
	if !ok || rec.Char != char {
		return sancai.CharStrokes{}, false
	}

	switch s := rec.Strokes; {
	case s.Kangxi > 0:
		return sancai.CharStrokes{Char: char, Strokes: s.Kangxi, Source: SourceKangxi}, true
	case s.Traditional > 0:
		return sancai.CharStrokes{Char: char, Strokes: s.Traditional, Source: SourceTraditional}, true
	case s.Simplified > 0:
		return sancai.CharStrokes{Char: char, Strokes: s.Simplified, Source: SourceSimplified}, true
	default:
		return sancai.CharStrokes{}, false
	}
}
