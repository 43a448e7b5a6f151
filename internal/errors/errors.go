// Package errors provides shared error types for the deskfit tool clients.
package errors

import (
	"errors"
	"fmt"
)

// NotFoundError indicates an upstream service had no answer for a query.
type NotFoundError struct {
	Service string // "weather", "dictionary", "geo", ...
	Kind    string // "city", "word", "place", "rate"
	Query   string // the lookup that failed
}

func (e *NotFoundError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s not found by %s service: %s", e.Kind, e.Service, e.Query)
	}
	return fmt.Sprintf("not found by %s service: %s", e.Service, e.Query)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(service, kind, query string) *NotFoundError {
	return &NotFoundError{Service: service, Kind: kind, Query: query}
}

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
