package errors

import (
	"fmt"
	"strings"
)

// StrataError defines the base interface for all compiler and container errors
type StrataError interface {
	error
	ErrorCode() ErrorCode
	ServiceIDs() []string
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Compile-time error types
	DuplicateIDCode
	UnknownTargetCode
	CyclicAliasCode
	DuplicateInnerIDCode
	InvalidLayerCode
	InvalidDefinitionCode
	ConfigCode

	// Runtime error types
	SyntheticNotInitializedCode
	PrivateServiceCode
	MissingFactoryCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case DuplicateIDCode:
		return "DuplicateIDError"
	case UnknownTargetCode:
		return "UnknownTargetError"
	case CyclicAliasCode:
		return "CyclicAliasError"
	case DuplicateInnerIDCode:
		return "DuplicateInnerIDError"
	case InvalidLayerCode:
		return "InvalidLayerError"
	case InvalidDefinitionCode:
		return "InvalidDefinitionError"
	case ConfigCode:
		return "ConfigError"
	case SyntheticNotInitializedCode:
		return "SyntheticServiceNotInitializedError"
	case PrivateServiceCode:
		return "PrivateServiceError"
	case MissingFactoryCode:
		return "MissingFactoryError"
	default:
		return "UnknownError"
	}
}

// IsCompileTime reports whether errors with this code are detected during
// compilation, as opposed to surfacing from a running container
func (e ErrorCode) IsCompileTime() bool {
	switch e {
	case DuplicateIDCode, UnknownTargetCode, CyclicAliasCode,
		DuplicateInnerIDCode, InvalidLayerCode, InvalidDefinitionCode, ConfigCode:
		return true
	default:
		return false
	}
}

// BaseError provides a common implementation of the StrataError interface
type BaseError struct {
	Code    ErrorCode // type of error
	Message string    // error message
	IDs     []string  // offending service/alias ids
	Cause   error     // underlying error cause
	Hints   []string  // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Code, strings.Join(e.IDs, ", "), e.Message)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// ServiceIDs returns the offending service ids
func (e *BaseError) ServiceIDs() []string {
	return e.IDs
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string, ids ...string) *BaseError {
	return &BaseError{Code: code, Message: message, IDs: ids}
}

// Newf creates a new BaseError with a formatted message and no ids
func Newf(code ErrorCode, format string, args ...any) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}
