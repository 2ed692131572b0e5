package handler

import (
	"errors"
	"net/http"
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrPanic wraps a value recovered from a panicking handler
	ErrPanic = errors.New("handler panicked")
)

// HTTPError is an error with a status code and a message that is safe to
// show to clients. The wrapped cause is only logged.
type HTTPError struct {
	Code    int
	Message string
	Details []string
	cause   error
}

// NewHTTPError creates an HTTPError with the given status and public message.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

func (e HTTPError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e HTTPError) Unwrap() error { return e.cause }

// Is matches another HTTPError with the same code and message, so
// package-level HTTPError values work as sentinels.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Code == e.Code && t.Message == e.Message
}

// WithDetails returns a copy carrying the given details.
func (e HTTPError) WithDetails(details ...string) HTTPError {
	e.Details = append([]string(nil), details...)
	return e
}

// Wrap returns a copy with err attached as the cause.
func (e HTTPError) Wrap(err error) HTTPError {
	e.cause = err
	return e
}

// ErrMethodNotAllowed is the 405 response body used by routers.
var ErrMethodNotAllowed = NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
