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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Resource tree errors
	ErrRootNotFound     ErrorCode = "ROOT_NOT_FOUND"
	ErrResourcesMissing ErrorCode = "RESOURCES_MISSING"
	ErrRuleParse        ErrorCode = "RULE_PARSE"
	ErrDocNotFound      ErrorCode = "DOC_NOT_FOUND"

	// FileSystem errors
	ErrFileAccess  ErrorCode = "FILE_ACCESS"
	ErrDirCreate   ErrorCode = "DIR_CREATE"
	ErrLinkCreate  ErrorCode = "LINK_CREATE"
	ErrLinkRemove  ErrorCode = "LINK_REMOVE"
	ErrLinkBlocked ErrorCode = "LINK_BLOCKED"

	// Watch errors
	ErrWatchInit ErrorCode = "WATCH_INIT"
)

// CursyncError represents a structured error with code and details
type CursyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CursyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CursyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CursyncError) Is(target error) bool {
	var targetErr *CursyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CursyncError with the given code and message
func New(code ErrorCode, message string) *CursyncError {
	return &CursyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CursyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CursyncError {
	return &CursyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CursyncError
func Wrap(err error, code ErrorCode, message string) *CursyncError {
	if err == nil {
		return nil
	}
	return &CursyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CursyncError {
	if err == nil {
		return nil
	}
	return &CursyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CursyncError) WithDetail(key string, value interface{}) *CursyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var cursyncErr *CursyncError
	if errors.As(err, &cursyncErr) {
		return cursyncErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CursyncError
func GetErrorCode(err error) ErrorCode {
	var cursyncErr *CursyncError
	if errors.As(err, &cursyncErr) {
		return cursyncErr.Code
	}
	return ErrUnknown
}
