package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an AppError. Each code maps to exactly one HTTP status.
type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeUnavailable  Code = "SERVICE_UNAVAILABLE"
)

var statusByCode = map[Code]int{
	CodeNotFound:     http.StatusNotFound,
	CodeValidation:   http.StatusUnprocessableEntity,
	CodeInvalidInput: http.StatusBadRequest,
	CodeInternal:     http.StatusInternalServerError,
	CodeUnavailable:  http.StatusServiceUnavailable,
}

// AppError is the error shape shared by the booking service and the admin
// API. Err keeps the underlying cause for errors.Is and logging, it is never
// shown to clients.
type AppError struct {
	Code    Code
	Message string
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status is the HTTP status for the error code, 500 for unknown codes.
func (e *AppError) Status() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Temporary reports whether retrying the same call may succeed.
func (e *AppError) Temporary() bool {
	return e.Code == CodeInternal || e.Code == CodeUnavailable
}

func NotFound(resource string, id any, cause error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Details: map[string]any{"resource": resource, "id": id},
		Err:     cause,
	}
}

func InvalidInput(message string, cause error) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message, Err: cause}
}

// Validation carries one message per rejected field in Details.
func Validation(message string, fields map[string]string, cause error) *AppError {
	details := make(map[string]any, len(fields))
	for field, msg := range fields {
		details[field] = msg
	}
	return &AppError{Code: CodeValidation, Message: message, Details: details, Err: cause}
}

func Internal(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: cause}
}

func Unavailable(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeUnavailable,
		Message: fmt.Sprintf("%s is temporarily unavailable", service),
		Err:     cause,
	}
}

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// AsAppError unwraps err to an AppError. Anything else becomes an internal
// error so its message is never exposed.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
