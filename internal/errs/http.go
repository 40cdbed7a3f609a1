// Package errs defines the error shape returned to API clients.
//
// Every failure that reaches the client is rendered from an HTTPError,
// so bodies are always {"message": ...} with optional field-level errors.
package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "firstName", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type rendered by the global error handler.
//
// Code and Status drive logging and the response status line; only
// Message and Errors are serialized into the body.
type HTTPError struct {
	Code    string       `json:"-"`
	Message string       `json:"message"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`

	cause error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying failure to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports true for any *HTTPError target.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithStatus returns a copy of e answered with a different status code.
func (e *HTTPError) WithStatus(status int) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: e.Message,
		Status:  status,
		Errors:  e.Errors,
		cause:   e.cause,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
