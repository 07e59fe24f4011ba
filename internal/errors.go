package internal

import (
	"errors"
	"net/http"
)

// HTTPError is an error with an HTTP status code attached. Handlers and
// middleware return it to produce a structured error response; the dispatch
// boundary renders it as {"error": message} with the carried status.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to clients).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 401, 404).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// WithError attaches the underlying cause for logging.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError reports whether err is (or wraps) an *HTTPError.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// AsHTTPError extracts the HTTPError from err, or nil if absent.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}
