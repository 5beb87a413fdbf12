package domain

import (
	"fmt"
	"strings"
)

// InvalidInputError reports a malformed or out-of-range moment or location.
// Chart assembly fails fast on it and never partially computes.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// NewInvalidInput creates an InvalidInputError for the given field
func NewInvalidInput(field, format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ComputationError reports that the ephemeris rejected a moment or body.
// Never retried: the math is deterministic, retrying changes nothing.
type ComputationError struct {
	Op     string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed in %s: %s", e.Op, e.Reason)
}

// NewComputationError creates a ComputationError for the given operation
func NewComputationError(op, format string, args ...interface{}) *ComputationError {
	return &ComputationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// IncompleteBirthDataError reports that a profile is missing the birth data
// required for chart computation. Raised at the chart service boundary, not
// inside the engines: the correct behavior is to refuse rather than silently
// substitute defaults. The explicit approximate mode is the only sanctioned
// fallback and always flags its output.
type IncompleteBirthDataError struct {
	Missing []string
}

func (e *IncompleteBirthDataError) Error() string {
	return fmt.Sprintf("incomplete birth data: missing %s", strings.Join(e.Missing, ", "))
}
