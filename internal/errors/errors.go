package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline errors for logging and recovery policy.
type ErrorType string

const (
	ErrTypeParsing  ErrorType = "PARSING"
	ErrTypeIdentity ErrorType = "IDENTITY"
	ErrTypeNoData   ErrorType = "NO_DATA"
	ErrTypeStorage  ErrorType = "STORAGE"
	ErrTypeConfig   ErrorType = "CONFIG"
)

// AppError is the application error carrying a type, a message, an
// optional cause and free-form context for structured logging.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// NewUnparsableFileError marks a raw file that cannot be decoded or
// whose required date column cannot be located. The file is skipped;
// the period load continues.
func NewUnparsableFileError(file string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, fmt.Sprintf("unparsable raw file %s", file), cause).
		WithContext("file", file)
}

// NewIdentityError marks a filename that does not match the recognized
// box/sensor pattern. The file is skipped.
func NewIdentityError(file string) *AppError {
	return NewAppError(ErrTypeIdentity, fmt.Sprintf("cannot resolve box/sensor identity from filename %s", file), nil).
		WithContext("file", file)
}

// NewNoDataError is the fatal case: an entire period directory yielded
// zero usable sensor tables.
func NewNoDataError(period string) *AppError {
	return NewAppError(ErrTypeNoData, fmt.Sprintf("no usable sensor data in period %s", period), nil).
		WithContext("period", period)
}

// NewStorageError creates a storage-related error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
