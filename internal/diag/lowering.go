package diag

import (
	"errors"
	"strings"
)

// LoweringError rejects a function as structurally unlowerable. Unlike
// a TypingError there is no fallback: a malformed graph is a front-end
// contract violation and fails compilation outright.
type LoweringError struct {
	Diags []Diagnostic
}

func (e *LoweringError) Error() string {
	if len(e.Diags) == 0 {
		return "lowering error"
	}
	msgs := make([]string, 0, len(e.Diags))
	for _, d := range e.Diags {
		msgs = append(msgs, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// NewLoweringError wraps diagnostics in a LoweringError.
func NewLoweringError(diags ...Diagnostic) *LoweringError {
	return &LoweringError{Diags: diags}
}

// IsLoweringError reports whether err is (or wraps) a LoweringError.
func IsLoweringError(err error) bool {
	var le *LoweringError
	return errors.As(err, &le)
}
