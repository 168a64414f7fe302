package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound       ErrorType = "NOT_FOUND"
	ErrTypeEmptyInput     ErrorType = "EMPTY_INPUT"
	ErrTypeRead           ErrorType = "READ"
	ErrTypeMissingColumns ErrorType = "MISSING_COLUMNS"
	ErrTypeNoValidRows    ErrorType = "NO_VALID_ROWS"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeValidation     ErrorType = "VALIDATION"
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

// IsWarning reports whether the error is a warning-level outcome rather than a hard failure.
func (e *AppError) IsWarning() bool {
	return e.Type == ErrTypeNoValidRows
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

// AsAppError extracts an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == errType
}

// Helper functions for common error types

// NewNotFoundError creates a not found error
func NewNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("file not found at %s", path), cause).
		WithContext("path", path)
}

// NewEmptyInputError creates an error for a source without data rows
func NewEmptyInputError(path string) *AppError {
	return NewAppError(ErrTypeEmptyInput, "CSV file is empty", nil).
		WithContext("path", path)
}

// NewReadError creates an error for a structurally malformed source
func NewReadError(path string, cause error) *AppError {
	return NewAppError(ErrTypeRead, "error reading CSV file", cause).
		WithContext("path", path)
}

// NewMissingColumnsError creates an error naming every absent required column
func NewMissingColumnsError(missing []string) *AppError {
	return NewAppError(ErrTypeMissingColumns,
		fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
		WithContext("missing_columns", missing)
}

// NewNoValidRowsError creates the warning raised when every row was dropped
func NewNoValidRowsError(dropped int) *AppError {
	return NewAppError(ErrTypeNoValidRows,
		"no valid date entries found after cleaning; no charts can be generated", nil).
		WithContext("rows_dropped", dropped)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// MissingColumns returns the column names recorded on a MISSING_COLUMNS error.
func MissingColumns(err error) []string {
	appErr, ok := AsAppError(err)
	if !ok || appErr.Type != ErrTypeMissingColumns {
		return nil
	}
	cols, _ := appErr.Context["missing_columns"].([]string)
	return cols
}
