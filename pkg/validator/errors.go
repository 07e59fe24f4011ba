package validator

import "errors"

// Errors carries the per-field error report of a failed validation.
// It implements the error interface so handlers can bubble it up to the
// dispatch boundary, where it is rendered as a 422 response.
type Errors struct {
	// Fields maps a field name to its error messages, in rule order.
	// Fields with zero errors are never present.
	Fields map[string][]string
}

func (e *Errors) Error() string {
	return "validation failed"
}

// IsValidationError reports whether err is (or wraps) an *Errors.
func IsValidationError(err error) bool {
	var ve *Errors
	return errors.As(err, &ve)
}

// AsValidationError extracts the *Errors from err, or nil if absent.
func AsValidationError(err error) *Errors {
	var ve *Errors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
