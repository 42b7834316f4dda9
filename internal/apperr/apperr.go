// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these; the HTTP layer maps each kind to a status code.
package apperr

import "errors"

type Kind int

const (
	// KindInternal is the fallback for anything a service didn't classify.
	KindInternal Kind = iota
	// KindValidation covers bad or missing input fields.
	KindValidation
	// KindNotFound covers unknown identifiers.
	KindNotFound
	// KindUnauthorized covers credential and token failures.
	KindUnauthorized
	// KindUnavailable covers an unreachable persistence store.
	KindUnavailable
)

// Error carries a kind and a user-facing message. The wrapped error, if any,
// is for logs only and must never reach a response body.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Unavailable(msg string, err error) error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

// Token failures are sentinel values so callers can tell an expired token
// from a malformed one.
var (
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Incorrect username or password"}
	ErrInvalidToken       = &Error{Kind: KindUnauthorized, Message: "Invalid authentication token"}
	ErrExpiredToken       = &Error{Kind: KindUnauthorized, Message: "Authentication token has expired"}
)

// KindOf extracts the kind from err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-facing message, or "" for unclassified errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
