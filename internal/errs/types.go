package errs

import (
	"net/http"
)

// Messages the phonebook API sends for its domain errors.
const (
	MessageUnknownEndpoint = "unknownEndpoint"
	MessageInvalidID       = "Invalid ID format (must be a number)"
	MessagePersonNotFound  = "Person not found"
	MessageMissingFields   = "number or name missing"
	MessageMissingNumber   = "number missing"
	MessageNameNotUnique   = "name must be unique"
	MessageMalformedBody   = "malformed request body"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports optional custom code override similar to NewBadRequestError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewEmptyNotFoundError creates a 404 that is written without a body.
func NewEmptyNotFoundError() *HTTPError {
	err := NewNotFoundError(http.StatusText(http.StatusNotFound), nil)
	err.Empty = true
	return err
}

// NewUnknownEndpointError is the catch-all answer for requests that match
// no route and no static asset.
func NewUnknownEndpointError() *HTTPError {
	code := "UNKNOWN_ENDPOINT"
	return NewNotFoundError(MessageUnknownEndpoint, &code)
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusTooManyRequests),
		Message: http.StatusText(http.StatusTooManyRequests),
		Status:  http.StatusTooManyRequests,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusForbidden),
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
