package diag

import (
	"errors"
	"strings"
)

// TypingError rejects a function for native generator lowering.
// Callers treat it as a signal to fall back to the interpreted path;
// it never aborts compilation of sibling functions.
type TypingError struct {
	Diags []Diagnostic
}

func (e *TypingError) Error() string {
	if len(e.Diags) == 0 {
		return "typing error"
	}
	msgs := make([]string, 0, len(e.Diags))
	for _, d := range e.Diags {
		msgs = append(msgs, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// NewTypingError wraps diagnostics in a TypingError.
func NewTypingError(diags ...Diagnostic) *TypingError {
	return &TypingError{Diags: diags}
}

// IsTypingError reports whether err is (or wraps) a TypingError.
func IsTypingError(err error) bool {
	var te *TypingError
	return errors.As(err, &te)
}

// AsTypingError extracts a wrapped TypingError into target.
func AsTypingError(err error, target **TypingError) bool {
	return errors.As(err, target)
}
