package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Leitner error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrFileTooLarge   ErrorCode = "FILE_TOO_LARGE"  // 413
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// LeitnerError represents a structured error with code, status, and details.
type LeitnerError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LeitnerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *LeitnerError {
	return &LeitnerError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a fact cannot be found.
func NewNotFound(id string) *LeitnerError {
	return &LeitnerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("fact not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewFileNotFound creates a 404 error for an input file that does not exist.
func NewFileNotFound(path string) *LeitnerError {
	return &LeitnerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewFileTooLarge creates a 413 error when an input file exceeds the configured limit.
func NewFileTooLarge(max, actual int64) *LeitnerError {
	return &LeitnerError{
		Code:    ErrFileTooLarge,
		Status:  413,
		Message: fmt.Sprintf("file exceeds maximum size: %d bytes (max %d)", actual, max),
		Details: map[string]any{"max_bytes": max, "actual_bytes": actual},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *LeitnerError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &LeitnerError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if err (or anything it wraps) is a LeitnerError with the given code.
func Is(err error, code ErrorCode) bool {
	var lErr *LeitnerError
	if stderrors.As(err, &lErr) {
		return lErr.Code == code
	}
	return false
}
