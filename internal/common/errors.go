// Package common defines shared sentinel errors and the status-bearing Error
// type used across service and transport layers. Callers should use errors.Is
// or errors.As to match these values.
package common

import "errors"

// ErrNotFound is the repository-level error for missing rows.
var ErrNotFound = errors.New("not found")

// Kind classifies an Error so the transport layer can map it to a status code.
type Kind int

const (
	// KindUnexpected covers anything that is not one of the typed failures.
	KindUnexpected Kind = iota
	// KindBadRequest covers validation failures, duplicates, and bad credentials.
	KindBadRequest
	// KindNotFound covers lookups for unknown emails.
	KindNotFound
	// KindUnauthorized covers missing, invalid, or revoked tokens.
	KindUnauthorized
)

// Error is a typed, caller-visible failure. Service operations fail fast with
// one of these; the transport layer maps Kind to a status code and never leaks
// details of untyped errors.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewBadRequest returns a BadRequest error with the given message.
func NewBadRequest(msg string) error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// NewNotFound returns a NotFound error with the given message.
func NewNotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewUnauthorized returns an Unauthorized error.
func NewUnauthorized() error {
	return &Error{Kind: KindUnauthorized, Message: "unauthorized"}
}

// KindOf extracts the Kind from err, returning KindUnexpected for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}
