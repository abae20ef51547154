package common

import "strings"

// ValidationError reports a rejected request payload. It matches
// ErrorValidation with errors.Is.
type ValidationError struct {
	// Fields lists the required fields that were absent.
	Fields []string
	// Reason is used instead of Fields for malformed values.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrorValidation }

// RequireFields returns a *ValidationError naming every key of values whose
// value is empty, in the order given by names, or nil if all are present.
func RequireFields(names []string, values map[string]bool) error {
	var missing []string
	for _, n := range names {
		if !values[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

// Invalid builds a *ValidationError for a malformed value.
func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
