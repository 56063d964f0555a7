package sancai

import "unicode/utf8"

// MaxGivenNameLen is the longest given name, in characters, the method is defined for.
const MaxGivenNameLen = 2

// IsChinese reports whether r is in the CJK Unified Ideographs block.
func IsChinese(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// Validate checks both fields of in and returns it unchanged when valid.
// The surname is checked first.
func Validate(in NameInput) (NameInput, error) {
	if err := validateField(FieldSurname, in.Surname); err != nil {
		return NameInput{}, err
	}
	if err := validateField(FieldGivenName, in.GivenName); err != nil {
		return NameInput{}, err
	}
	if utf8.RuneCountInString(in.GivenName) > MaxGivenNameLen {
		return NameInput{}, &InvalidInputError{Field: FieldGivenName, Reason: ReasonTooLong}
	}
	return in, nil
}

func validateField(field, value string) error {
	if value == "" {
		return &InvalidInputError{Field: field, Reason: ReasonEmpty}
	}
	for _, r := range value {
		if !IsChinese(r) {
			return &InvalidInputError{Field: field, Reason: ReasonNonChinese, Offending: string(r)}
		}
	}
	return nil
}
