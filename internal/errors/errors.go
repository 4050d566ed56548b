package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error code
type ErrorCode string

const (
	// Caption errors
	CodeEmptyCaption ErrorCode = "EMPTY_CAPTION"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Prefix rotation errors
	CodeDuplicatePrefix ErrorCode = "DUPLICATE_PREFIX"
	CodeIndexRange      ErrorCode = "INDEX_OUT_OF_RANGE"

	// Forwarding errors
	CodeTargetNotFound ErrorCode = "TARGET_NOT_FOUND"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeTransport      ErrorCode = "TRANSPORT_ERROR"
	CodeServiceTimeout ErrorCode = "SERVICE_TIMEOUT"

	// Database errors
	CodeDatabase           ErrorCode = "DATABASE_ERROR"
	CodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION_ERROR"

	// Config errors
	CodeConfig        ErrorCode = "CONFIG_ERROR"
	CodeInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Internal errors
	CodeInternal ErrorCode = "INTERNAL_ERROR"
	CodeUnknown  ErrorCode = "UNKNOWN_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// EmptyCaptionError creates an error for empty or whitespace-only captions.
// Callers are expected to treat it as a silent skip, not a user-visible failure.
func EmptyCaptionError() *AppError {
	return New(CodeEmptyCaption, "caption is empty")
}

// DuplicatePrefixError creates an error for an already registered prefix token
func DuplicatePrefixError(token string) *AppError {
	return New(CodeDuplicatePrefix, "prefix already registered").
		WithContext("token", token)
}

// IndexRangeError creates an error for an out-of-range prefix index
func IndexRangeError(index, length int) *AppError {
	return New(CodeIndexRange, fmt.Sprintf("index %d out of range [0, %d)", index, length))
}

// TargetNotFoundError creates a terminal forwarding error for a missing destination
func TargetNotFoundError(target string, err error) *AppError {
	return Wrap(err, CodeTargetNotFound, "destination not found").
		WithContext("target", target)
}

// ForbiddenError creates a terminal forwarding error for insufficient permission
func ForbiddenError(target string, err error) *AppError {
	return Wrap(err, CodeForbidden, "insufficient permission for destination").
		WithContext("target", target)
}

// TransportError creates a retryable transport error
func TransportError(message string, err error) *AppError {
	return Wrap(err, CodeTransport, message)
}

// DatabaseError creates a database error
func DatabaseError(message string, err error) *AppError {
	return Wrap(err, CodeDatabase, message)
}

// ConfigError creates a configuration error
func ConfigError(message string, err error) *AppError {
	if err != nil {
		return Wrap(err, CodeConfig, message)
	}
	return New(CodeConfig, message)
}

// IsRetryable determines if an error is retryable
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeTransport, CodeServiceTimeout, CodeDatabaseConnection:
			return true
		}
		return false
	}
	// Unclassified errors are treated as transient transport failures
	return err != nil
}

// IsTerminalForward reports whether a forwarding error must not be retried
func IsTerminalForward(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == CodeTargetNotFound || appErr.Code == CodeForbidden
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// IsEmptyCaption checks if an error is the benign empty-caption error
func IsEmptyCaption(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == CodeEmptyCaption
	}
	return false
}
