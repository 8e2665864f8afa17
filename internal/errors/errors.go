// Package errors provides the base error kinds shared by every domain package.
// Domain packages wrap these kinds with their own sentinels so callers can match
// on either the broad kind or the precise failure with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// Base error kinds.
var (
	// ErrNotFound indicates the referenced entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is malformed, fails validation or fails to authenticate.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the operation requires an unlocked session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the operation is refused regardless of input.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
