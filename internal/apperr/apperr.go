// Package apperr defines the application error taxonomy. Handlers map
// these kinds onto HTTP statuses at the boundary; everything below the
// boundary deals in kinds, not status codes.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind int

const (
	// KindNotFound covers missing records and broken references
	KindNotFound Kind = iota + 1
	// KindUnauthorized covers role mismatches and non-owner mutations
	KindUnauthorized
	// KindValidation covers malformed or rejected input
	KindValidation
	// KindConflict covers duplicates and rejected state transitions
	KindConflict
	// KindInternal covers infrastructure and unclassified failures
	KindInternal
)

// Error is an application error carrying a classification kind
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound creates a not-found error
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Unauthorized creates an authorization error
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Validation creates a validation error
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Conflict creates a conflict error
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Internal wraps an unclassified failure
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal when err carries no
// classification.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsClient reports whether err is caller-induced and should surface as
// a client error.
func IsClient(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindUnauthorized, KindValidation, KindConflict:
		return true
	}
	return false
}
