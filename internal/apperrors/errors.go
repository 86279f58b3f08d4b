package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError is returned when a request field is missing or malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a failure from the underlying document store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the store operation that failed.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// ErrorResponse is the JSON body sent for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError carries the status code and machine-readable code for a failure.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to the response body shape.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Code: e.Code}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so internal details never leak to the caller.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	var se *StorageError

	switch {
	case errors.Is(err, ErrUserNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: ErrUserNotFound.Error(), Code: "USER_NOT_FOUND"}
	case errors.As(err, &ve):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: ve.Message, Code: "VALIDATION_FAILED"}
	case errors.As(err, &se):
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "storage operation failed", Code: "STORAGE_ERROR"}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "internal server error", Code: "INTERNAL_ERROR"}
	}
}
