// Package apperr defines the error kinds shared across the application core.
// Controllers map these to HTTP statuses; services and repositories return them
// at the point of detection.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized signals an authenticated identity without the required
	// capability. Distinct from ErrNotFound so existence is not leaked.
	ErrUnauthorized = errors.New("insufficient permissions")

	// ErrUnauthenticated signals a missing or invalid identity.
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError describes malformed or missing input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for the given field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Validationf builds a ValidationError with a formatted reason.
func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IndexError describes an out-of-bounds position in an ordered sequence.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

// IsIndex reports whether err is an IndexError.
func IsIndex(err error) bool {
	var ie *IndexError
	return errors.As(err, &ie)
}

// StoreError wraps a failure from the persistence layer. It is surfaced as-is;
// the caller decides whether to retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError unless it is nil or already one of the core
// error kinds.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrUnauthenticated) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStore reports whether err is a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
