// Package errors defines the service error taxonomy and the JSON envelope
// rendered at the HTTP boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes rendered in HTTP envelopes.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConfiguration    = "CONFIGURATION_ERROR"
	CodeUpstream         = "UPSTREAM_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Error is a classified service error carrying its HTTP mapping.
type Error struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a 400-class error with a user-visible reason.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Message: message}
}

// NotFound builds a 404-class error.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: message}
}

// Configuration builds a 500-class error naming a missing deployment setting.
func Configuration(message string) *Error {
	return &Error{Code: CodeConfiguration, Status: http.StatusInternalServerError, Message: message}
}

// Upstream builds a 502-class error for a failed external call.
func Upstream(err error) *Error {
	return &Error{Code: CodeUpstream, Status: http.StatusBadGateway, Message: err.Error(), Err: err}
}

// Internal builds a 500-class error for an uncaught failure.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Status: http.StatusInternalServerError, Message: err.Error(), Err: err}
}

// Classify maps an arbitrary error to a service error. Already-classified
// errors pass through unchanged.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
