// Package apperror defines the domain errors shared by the repository,
// service and handler layers.
//
// Repositories and services return these; only the HTTP layer decides which
// status code each one maps to.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Duplicate reports a uniqueness violation raised by the store.
// The store's own message is kept so callers can surface it as-is.
func Duplicate(field string, cause error) *AppError {
	msg := field + " already exists"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Err:     ErrConflict,
		Message: msg,
		Field:   field,
	}
}

// Unauthorized reports missing or mismatched credentials.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
