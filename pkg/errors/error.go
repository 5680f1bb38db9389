// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters and configuration
//   - Data/Resource errors (200-299): Missing or empty payloads
//   - API/transport errors (300-399): Backend request and status failures
//   - Feed errors (400-499): Feed parsing and lifecycle errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeDataNotFound, "no rows for feed %s", name)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeRequestFailed, "failed to reach backend", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeEmptyPayload) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// StatusError represents a non-2xx response from the backend API.
type StatusError struct {
	StatusCode int    // HTTP status code returned by the backend
	Endpoint   string // Endpoint path that produced the response
	Message    string // Human-readable message
}

// NewStatusError creates a new StatusError.
func NewStatusError(statusCode int, endpoint, message string) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewStatusErrorf creates a new StatusError with a formatted message.
func NewStatusErrorf(statusCode int, endpoint, format string, args ...any) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return e.Message
}

// IsStatusError checks if an error is a StatusError.
// It uses errors.As to check the error chain.
func IsStatusError(err error) bool {
	var statusErr *StatusError

	return errors.As(err, &statusErr)
}
