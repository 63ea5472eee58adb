package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation is the parent of every ValidationError.
	ErrValidation = errors.New("validation failed")
)

var (
	ErrMissingUser    = &ValidationError{Field: "user_id", Reason: "missing user_id"}
	ErrMissingProduct = &ValidationError{Field: "product_id", Reason: "missing product_id"}
	ErrEmptyOrder     = &ValidationError{Field: "items", Reason: "items must be a non-empty array"}
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a storage failure. Its message is meant for logs only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError unless it is nil or already a
// domain-level error.
func Persistence(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
