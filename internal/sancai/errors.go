package sancai

import (
	"fmt"
	"strings"
)

// Code is a machine-readable failure code.
type Code string

const (
	CodeInvalidInput          Code = "INVALID_INPUT"
	CodeUnresolvedCharacter   Code = "UNRESOLVED_CHARACTER"
	CodeDictionaryUnavailable Code = "DICTIONARY_UNAVAILABLE"
)

// Field names used in InvalidInputError.
const (
	FieldSurname   = "surname"
	FieldGivenName = "givenName"
)

// InvalidReason says which validation rule a field broke.
type InvalidReason string

const (
	ReasonEmpty      InvalidReason = "empty"       // field is empty
	ReasonNonChinese InvalidReason = "non_chinese" // contains a rune outside U+4E00–U+9FFF
	ReasonTooLong    InvalidReason = "too_long"    // given name longer than two characters
)

// InvalidInputError reports a name that failed validation. It is produced before any
// dictionary access.
type InvalidInputError struct {
	Field  string
	Reason InvalidReason
	// Offending holds the first rejected rune for ReasonNonChinese.
	Offending string
}

func (e *InvalidInputError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return fmt.Sprintf("invalid %s: must not be empty", e.Field)
	case ReasonNonChinese:
		return fmt.Sprintf("invalid %s: %q is not a Chinese character", e.Field, e.Offending)
	case ReasonTooLong:
		return fmt.Sprintf("invalid %s: at most %d characters allowed", e.Field, MaxGivenNameLen)
	default:
		return fmt.Sprintf("invalid %s", e.Field)
	}
}

// Code returns CodeInvalidInput.
func (e *InvalidInputError) Code() Code { return CodeInvalidInput }

// UnresolvedCharacterError lists every input character that has no usable stroke data.
type UnresolvedCharacterError struct {
	Chars []string
}

func (e *UnresolvedCharacterError) Error() string {
	return fmt.Sprintf("characters not in the standard character table: %s", strings.Join(e.Chars, ", "))
}

// Code returns CodeUnresolvedCharacter.
func (e *UnresolvedCharacterError) Code() Code { return CodeUnresolvedCharacter }

// DictionaryUnavailableError means the stroke dictionary could not be loaded.
type DictionaryUnavailableError struct {
	Source string
	Cause  error
}

func (e *DictionaryUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dictionary unavailable (%s): %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("dictionary unavailable (%s)", e.Source)
}

func (e *DictionaryUnavailableError) Unwrap() error { return e.Cause }

// Code returns CodeDictionaryUnavailable.
func (e *DictionaryUnavailableError) Code() Code { return CodeDictionaryUnavailable }

// Retryable reports whether re-invoking may succeed without changing the input.
func (e *DictionaryUnavailableError) Retryable() bool { return true }
