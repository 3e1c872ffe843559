// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped in a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is missing where required or not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrIDMismatch is returned when an update names a different ID than the
	// record being replaced.
	ErrIDMismatch = errors.New("ID does not match the task being updated")
)

// ValidationError describes a single field that failed validation.
type ValidationError struct {
	Field   string // Name of the offending field as it appears on the wire
	Message string // Human-readable condition that was violated
	Err     error  // Underlying sentinel, always matchable with errors.Is
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

// Unwrap exposes both the specific cause and ErrValidation to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.Err, ErrValidation}
}

// NewValidationError creates a ValidationError for field. err may be nil, in
// which case only ErrValidation is matched.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
