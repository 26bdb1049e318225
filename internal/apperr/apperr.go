package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the error type returned by services. Code is the HTTP status the
// API answers with and Message is what the client sees.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation is malformed, missing or out-of-domain input.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Unauthenticated is a missing or bad credential.
func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// Forbidden is an authenticated principal denied by a policy.
func Forbidden() *Error {
	return New(http.StatusForbidden, "Access is forbidden.", nil)
}

func ForbiddenMessage(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

// NotFound is a target resource id that does not resolve.
func NotFound(model string) *Error {
	if model == "" {
		model = "resource"
	}
	return New(http.StatusNotFound, strings.ToUpper(model[:1])+model[1:]+" is not found", nil)
}

func TooManyRequests() *Error {
	return New(http.StatusTooManyRequests, "Too Many Attempts.", nil)
}

// Internal passes the underlying message through to the client.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, err.Error(), err)
}

// From converts any error into an *Error, treating unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Is reports whether err carries the given status code.
func Is(err error, code int) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
