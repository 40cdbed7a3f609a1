package errs

import (
	"net/http"
)

// Message prefixes that clients match on to tell store failures
// apart from other unexpected failures.
const (
	StoreExceptionPrefix  = "MongoDB Exception: "
	ServerExceptionPrefix = "Server Exception: "
)

// New creates an HTTPError whose code is derived from the status text.
func New(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewUnauthorizedError creates a 401. The API uses it for every
// domain rejection: unknown ids, taken usernames, bad credentials.
func NewUnauthorizedError(message string) *HTTPError {
	return New(http.StatusUnauthorized, message)
}

// NewBadRequestError creates a 400 with optional field errors.
func NewBadRequestError(message string, errors []FieldError) *HTTPError {
	e := New(http.StatusBadRequest, message)
	e.Errors = errors
	return e
}

// NewNotFoundError creates a 404.
func NewNotFoundError(message string) *HTTPError {
	return New(http.StatusNotFound, message)
}

// NewTooManyRequestsError creates a 429.
func NewTooManyRequestsError(message string) *HTTPError {
	return New(http.StatusTooManyRequests, message)
}

// NewStoreError reports a failed document store call as a 501.
func NewStoreError(err error) *HTTPError {
	return &HTTPError{
		Code:    "STORE_ERROR",
		Message: StoreExceptionPrefix + err.Error(),
		Status:  http.StatusNotImplemented,
		cause:   err,
	}
}

// NewServerError reports any other unexpected failure as a 500.
func NewServerError(err error) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: ServerExceptionPrefix + err.Error(),
		Status:  http.StatusInternalServerError,
		cause:   err,
	}
}
