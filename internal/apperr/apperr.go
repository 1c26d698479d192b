package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the response categories the API
// exposes to clients.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindForbidden
	KindConflict
)

// Error carries a client-safe message alongside its classification. The
// wrapped cause, if any, is for logs only and never reaches the client.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Invalid(msg string) error   { return &Error{Kind: KindInvalid, Msg: msg} }
func NotFound(msg string) error  { return &Error{Kind: KindNotFound, Msg: msg} }
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Msg: msg} }
func Conflict(msg string) error  { return &Error{Kind: KindConflict, Msg: msg} }

// Internal wraps an unexpected failure with a client-safe message.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf returns the classification of err, defaulting to internal for
// anything unclassified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the response status code for its kind.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Unclassified errors get a
// generic message so internal detail never leaks.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "internal server error"
}
