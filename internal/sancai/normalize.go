package sancai

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims surrounding whitespace and applies NFC, which maps CJK
// compatibility ideographs to their unified forms. Surfaces that accept typed
// or pasted names call it before Validate; the engine itself never rewrites input.
func Normalize(in NameInput) NameInput {
	return NameInput{
		Surname:   norm.NFC.String(strings.TrimSpace(in.Surname)),
		GivenName: norm.NFC.String(strings.TrimSpace(in.GivenName)),
	}
}
