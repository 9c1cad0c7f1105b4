package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSchemaMismatch ErrorType = "SCHEMA_MISMATCH"
	ErrTypeMissingInput   ErrorType = "MISSING_INPUT"
	ErrTypeMalformedField ErrorType = "MALFORMED_FIELD"
	ErrTypeData           ErrorType = "DATA"
	ErrTypeParsing        ErrorType = "PARSING"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeNotFound       ErrorType = "NOT_FOUND"
	ErrTypeConfig         ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether any AppError in err's chain has the given type.
func IsType(err error, errType ErrorType) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// TypeOf returns the type of the outermost AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Helper functions for common error types

// NewSchemaMismatchError creates an error for a table whose header matches no known shape.
// offered is a sample of the columns that were found.
func NewSchemaMismatchError(source string, offered []string) *AppError {
	return NewAppError(ErrTypeSchemaMismatch,
		fmt.Sprintf("%s does not match any known export signature", source), nil).
		WithContext("source", source).
		WithContext("offered_columns", offered)
}

// NewMissingInputError creates an error for an absent mandatory input table.
func NewMissingInputError(input string) *AppError {
	return NewAppError(ErrTypeMissingInput,
		fmt.Sprintf("mandatory input %s is missing", input), nil).
		WithContext("input", input)
}

// NewMalformedFieldError creates an error for a value that cannot be parsed.
func NewMalformedFieldError(column string, row int, value string, cause error) *AppError {
	return NewAppError(ErrTypeMalformedField,
		fmt.Sprintf("malformed value %q in column %q at row %d", value, column, row), cause).
		WithContext("column", column).
		WithContext("row", row).
		WithContext("value", value)
}

// NewDataError creates an error for structurally unusable data (missing columns, no rows).
func NewDataError(message string) *AppError {
	return NewAppError(ErrTypeData, message, nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
