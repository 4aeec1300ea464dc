package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing and
// exit-code mapping. Workflow termination statuses are ErrorCodes too,
// so a terminated pipeline and a returned error speak the same language.
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Source and search outcomes
	ErrSourceNotFound    ErrorCode = "SOURCE_NOT_FOUND"
	ErrSourceQueryFailed ErrorCode = "SOURCE_QUERY_FAILED"
	ErrNoMatches         ErrorCode = "NO_MATCHES"
	ErrMultipleMatches   ErrorCode = "MULTIPLE_MATCHES"

	// Installer errors
	ErrNoApplicableInstaller ErrorCode = "NO_APPLICABLE_INSTALLER"
	ErrInstallerFailed       ErrorCode = "INSTALLER_FAILED"
	ErrDownloadFailed        ErrorCode = "DOWNLOAD_FAILED"
	ErrHashMismatch          ErrorCode = "HASH_MISMATCH"
)

// exitCodes maps error codes to stable process exit codes. Benign
// search outcomes (no matches, multiple matches) are user-facing
// results, not failures, and exit 0.
var exitCodes = map[ErrorCode]int{
	ErrNoMatches:             0,
	ErrMultipleMatches:       0,
	ErrNoApplicableInstaller: 10,
	ErrInstallerFailed:       11,
	ErrDownloadFailed:        12,
	ErrHashMismatch:          13,
	ErrSourceQueryFailed:     14,
	ErrSourceNotFound:        15,
	ErrManifestParse:         16,
	ErrManifestInvalid:       17,
	ErrNotImplemented:        18,
	ErrConfigLoad:            19,
	ErrConfigParse:           19,
	ErrInvalidInput:          2,
	ErrInternal:              1,
	ErrUnknown:               1,
}

// ExitCode returns the process exit code for a given error code
func ExitCode(code ErrorCode) int {
	if ec, ok := exitCodes[code]; ok {
		return ec
	}
	return 1
}

// GetpkgError represents a structured error with code and details
type GetpkgError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GetpkgError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GetpkgError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GetpkgError) Is(target error) bool {
	var targetErr *GetpkgError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GetpkgError with the given code and message
func New(code ErrorCode, message string) *GetpkgError {
	return &GetpkgError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GetpkgError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GetpkgError {
	return &GetpkgError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GetpkgError
func Wrap(err error, code ErrorCode, message string) *GetpkgError {
	if err == nil {
		return nil
	}
	return &GetpkgError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GetpkgError {
	if err == nil {
		return nil
	}
	return &GetpkgError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GetpkgError) WithDetail(key string, value interface{}) *GetpkgError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var gerr *GetpkgError
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if
// the error is not a GetpkgError
func GetErrorCode(err error) ErrorCode {
	var gerr *GetpkgError
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GetpkgError
func GetErrorDetails(err error) map[string]interface{} {
	var gerr *GetpkgError
	if errors.As(err, &gerr) {
		return gerr.Details
	}
	return nil
}
