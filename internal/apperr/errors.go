package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an application error carrying the HTTP status and the message rendered to
// the caller as {"msg": Message}.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (status=%d): %v", e.Message, e.Status, e.Err)
	}
	return fmt.Sprintf("%s (status=%d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// Wrap attaches the underlying cause, which is logged but never shown to the caller.
func Wrap(status int, msg string, err error) *Error {
	return &Error{Status: status, Message: msg, Err: err}
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, msg)
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, msg)
}

func Internal(err error) *Error {
	return Wrap(http.StatusInternalServerError, "Internal server error", err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err, 500 when err is not an *Error.
func StatusOf(err error) int {
	if ae, ok := As(err); ok {
		return ae.Status
	}
	return http.StatusInternalServerError
}
