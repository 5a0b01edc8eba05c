package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable machine-readable error code surfaced in API responses.
type Code string

const (
	// CodeUnauthorized covers every credential failure: missing header,
	// malformed token, expired or unverifiable token. The distinction is
	// deliberately discarded at this boundary.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden means the credential was valid but the caller's rank
	// is below what the operation requires.
	CodeForbidden Code = "forbidden"

	// CodeActorMismatch means an authenticated caller tried to act on an
	// audit record attributed to a different principal.
	CodeActorMismatch Code = "actor_mismatch"

	// CodeMissingFields means required request fields were absent.
	CodeMissingFields Code = "missing_fields"

	// CodeInvalidPayload means the request body was structurally malformed.
	CodeInvalidPayload Code = "invalid_payload"

	// CodeNotFound means the referenced record does not exist.
	CodeNotFound Code = "not_found"

	// CodeInternal is the catch-all for unexpected failures, e.g. the
	// document store being unavailable.
	CodeInternal Code = "internal"
)

// Error is a structured error carrying a stable code alongside the message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the HTTP status this error maps to.
func (e *Error) HTTPStatusCode() int {
	return StatusForCode(e.Code)
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// IsCode checks whether err carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the code from an error, defaulting to internal for
// unstructured errors.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// StatusForCode maps an error code to its HTTP status.
func StatusForCode(code Code) int {
	switch code {
	case CodeMissingFields, CodeInvalidPayload:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeActorMismatch:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Convenience constructors for the common cases.

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

// Forbidden creates a forbidden error.
func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

// ActorMismatch creates an actor-mismatch error.
func ActorMismatch(message string) *Error {
	return New(CodeActorMismatch, message)
}

// MissingFields creates a missing-fields error naming the absent fields.
func MissingFields(fields ...string) *Error {
	return Newf(CodeMissingFields, "missing required fields: %v", fields)
}

// InvalidPayload creates an invalid-payload error.
func InvalidPayload(message string) *Error {
	return New(CodeInvalidPayload, message)
}

// Internal wraps an unexpected failure.
func Internal(err error, message string) *Error {
	if err == nil {
		return New(CodeInternal, message)
	}
	return Wrap(err, CodeInternal, message)
}
