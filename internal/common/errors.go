// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Matching errors.
	ErrEmptyTable       = errors.New("minutiae table is empty")
	ErrStoreFetch       = errors.New("reference collection fetch failed")
	ErrEnrollmentFailed = errors.New("enrollment failed")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user as a
// friendly message rather than a stack trace.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error with a user-friendly message.
func NewUserError(err error, message string) *UserError {
	return &UserError{Err: err, UserMessage: message}
}
