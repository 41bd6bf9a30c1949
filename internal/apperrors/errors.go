// Package apperrors defines the single typed error returned by services.
// Every operation-level failure carries an HTTP status and a client-safe message.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an Error.
type Kind string

const (
	KindBadRequest   Kind = "bad_request"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUpload       Kind = "upload"
	KindInternal     Kind = "internal"
)

// Error is an operation failure that can be rendered to a client.
type Error struct {
	Kind    Kind   // Failure category
	Status  int    // HTTP status code
	Message string // Client-safe message
	Err     error  // Underlying cause, never sent to the client
}

// Error returns the client-safe message followed by the cause, if any.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, status int, message string, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: err}
}

// BadRequest reports missing or malformed input.
func BadRequest(message string) *Error {
	return newError(KindBadRequest, http.StatusBadRequest, message, nil)
}

// Unauthorized reports bad credentials or a missing/invalid/mismatched token.
func Unauthorized(message string) *Error {
	return newError(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

// NotFound reports a missing user or channel.
func NotFound(message string) *Error {
	return newError(KindNotFound, http.StatusNotFound, message, nil)
}

// Conflict reports a duplicate username or email.
func Conflict(message string) *Error {
	return newError(KindConflict, http.StatusConflict, message, nil)
}

// Upload reports a failed media upload.
func Upload(message string, err error) *Error {
	return newError(KindUpload, http.StatusBadRequest, message, err)
}

// Internal wraps an unexpected store, hash or token failure.
func Internal(message string, err error) *Error {
	return newError(KindInternal, http.StatusInternalServerError, message, err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
