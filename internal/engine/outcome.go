package engine

import (
	"errors"

	"github.com/f3rmion/sancai/internal/sancai"
)

// Outcome is the serializable result of one analysis: either Result or a failure.
type Outcome struct {
	Input             sancai.NameInput `json:"input"`
	OK                bool             `json:"ok"`
	Result            *sancai.Result   `json:"result,omitempty"`
	InvalidCharacters []string         `json:"invalidCharacters,omitempty"`
	Error             *OutcomeError    `json:"error,omitempty"`
}

// OutcomeError describes a failed analysis.
type OutcomeError struct {
	Code      sancai.Code `json:"code"`
	Message   string      `json:"message"`
	Field     string      `json:"field,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Retryable bool        `json:"retryable"`
}

// Assemble packages the return values of Engine.Analyze.
func Assemble(in sancai.NameInput, res *sancai.Result, err error) Outcome {
	if err == nil {
		return Outcome{Input: in, OK: true, Result: res}
	}

	out := Outcome{Input: in, Error: &OutcomeError{Message: err.Error()}}

	var (
		invalid     *sancai.InvalidInputError
		unresolved  *sancai.UnresolvedCharacterError
		unavailable *sancai.DictionaryUnavailableError
	)
	switch {
	case errors.As(err, &invalid):
		out.Error.Code = invalid.Code()
		out.Error.Field = invalid.Field
		out.Error.Reason = string(invalid.Reason)
	case errors.As(err, &unresolved):
		out.Error.Code = unresolved.Code()
		out.InvalidCharacters = unresolved.Chars
	case errors.As(err, &unavailable):
		out.Error.Code = unavailable.Code()
		out.Error.Retryable = unavailable.Retryable()
	default:
		out.Error.Code = "INTERNAL"
	}
	return out
}
