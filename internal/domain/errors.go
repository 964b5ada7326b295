// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidQuery is returned when client-supplied list parameters are
	// out of bounds or reference values outside the allowed sets.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a validation failure on a specific field.
// It wraps one of the sentinel errors above so callers can classify it
// with errors.Is while still reporting which field was at fault.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel error to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field,
// wrapping the provided sentinel error.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
