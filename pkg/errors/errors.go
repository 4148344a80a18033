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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Module loading errors
	ErrModuleNotFound ErrorCode = "MODULE_NOT_FOUND"
	ErrModuleLoad     ErrorCode = "MODULE_LOAD"
	ErrPatchFailed    ErrorCode = "PATCH_FAILED"

	// Install post-processing errors
	ErrManifestRead ErrorCode = "MANIFEST_READ"
	ErrPkgInfoRead  ErrorCode = "PKGINFO_READ"

	// Relocation errors
	ErrBinaryDetect ErrorCode = "BINARY_DETECT"
	ErrRewrite      ErrorCode = "REWRITE"
	ErrSubprocess   ErrorCode = "SUBPROCESS"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
)

// RelenvError represents a structured error with code and details
type RelenvError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RelenvError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RelenvError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RelenvError) Is(target error) bool {
	var targetErr *RelenvError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RelenvError with the given code and message
func New(code ErrorCode, message string) *RelenvError {
	return &RelenvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RelenvError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RelenvError {
	return &RelenvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RelenvError
func Wrap(err error, code ErrorCode, message string) *RelenvError {
	if err == nil {
		return nil
	}
	return &RelenvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RelenvError {
	if err == nil {
		return nil
	}
	return &RelenvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RelenvError) WithDetail(key string, value interface{}) *RelenvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var relenvErr *RelenvError
	if errors.As(err, &relenvErr) {
		return relenvErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RelenvError
func GetErrorCode(err error) ErrorCode {
	var relenvErr *RelenvError
	if errors.As(err, &relenvErr) {
		return relenvErr.Code
	}
	return ErrUnknown
}
