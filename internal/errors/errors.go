// Package errors defines the error values shared by the orders service.
package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an order does not exist or was deleted.
	ErrNotFound = stderrors.New("not found")

	// ErrForbidden is returned when a caller acts on another user's order.
	ErrForbidden = stderrors.New("forbidden")

	// ErrConflict is returned when an order changed underneath the caller.
	ErrConflict = stderrors.New("conflict")

	// ErrUnauthenticated is returned when no caller identity was supplied.
	ErrUnauthenticated = stderrors.New("unauthenticated")
)

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field   string            `json:"field"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// WithDetail attaches extra context for the client.
func (e *ValidationError) WithDetail(key, value string) *ValidationError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: map[string]string{"field": field},
	}
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// IsForbidden reports whether err wraps ErrForbidden.
func IsForbidden(err error) bool {
	return stderrors.Is(err, ErrForbidden)
}

// IsConflict reports whether err wraps ErrConflict.
func IsConflict(err error) bool {
	return stderrors.Is(err, ErrConflict)
}

// IsUnauthenticated reports whether err wraps ErrUnauthenticated.
func IsUnauthenticated(err error) bool {
	return stderrors.Is(err, ErrUnauthenticated)
}

// AsValidation extracts a ValidationError from err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
