package model

import "fmt"

// ValidationError reports the first field of a record that failed validation.
// It is always raised before any network I/O takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// DecodeError reports a reply, notification or failure body that could not be
// mapped onto its record type.
type DecodeError struct {
	// Property is the canonical name of the offending key, empty when the body
	// itself could not be decoded.
	Property string
	Reason   string
}

func (e *DecodeError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("property '%s' %s", e.Property, e.Reason)
	}
	return e.Reason
}
