package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Setup errors, checked before the scan starts
	ErrInvalidRoot ErrorCode = "INVALID_ROOT"
	ErrNotADir     ErrorCode = "NOT_A_DIRECTORY"
	ErrBadPattern  ErrorCode = "BAD_PATTERN"
	ErrCurrentDir  ErrorCode = "CURRENT_DIR"

	// Scan errors
	ErrRelativePath ErrorCode = "RELATIVE_PATH"
	ErrWrite        ErrorCode = "WRITE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// FdError represents a structured error with code and details
type FdError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface
func (e *FdError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FdError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FdError) Is(target error) bool {
	var targetErr *FdError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FdError with the given code and message
func New(code ErrorCode, message string) *FdError {
	return &FdError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new FdError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FdError {
	return &FdError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an FdError
func Wrap(err error, code ErrorCode, message string) *FdError {
	if err == nil {
		return nil
	}
	return &FdError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FdError {
	if err == nil {
		return nil
	}
	return &FdError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Wrapped: err,
	}
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fdErr *FdError
	if errors.As(err, &fdErr) {
		return fdErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an FdError
func GetErrorCode(err error) ErrorCode {
	var fdErr *FdError
	if errors.As(err, &fdErr) {
		return fdErr.Code
	}
	return ErrUnknown
}
