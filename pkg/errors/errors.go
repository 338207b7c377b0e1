// Package errors provides typed errors for timelyfile
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrIO indicates an open, read or write failure other than interruption
	ErrIO ErrorType = iota
	// ErrOverflow indicates file content did not fit a fixed-size buffer
	ErrOverflow
	// ErrConfig indicates a configuration error
	ErrConfig
	// ErrValidation indicates an input validation error
	ErrValidation
)

// TimelyError is the base error type for all timelyfile errors
type TimelyError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *TimelyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *TimelyError) Unwrap() error {
	return e.Cause
}

// New creates a new TimelyError
func New(errType ErrorType, message string, cause error) *TimelyError {
	return &TimelyError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *TimelyError) WithContext(key string, value interface{}) *TimelyError {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var te *TimelyError
	if err == nil {
		return false
	}
	if errors.As(err, &te) {
		return te.Type == errType
	}
	return false
}

// IsRetryable returns true if the failure may clear up on a later attempt.
// A failed refresh is simply attempted again once the threshold elapses.
func IsRetryable(err error) bool {
	var te *TimelyError
	if !errors.As(err, &te) {
		return false
	}

	switch te.Type {
	case ErrIO:
		return true
	default:
		return false
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrIO:
		return "IO"
	case ErrOverflow:
		return "OVERFLOW"
	case ErrConfig:
		return "CONFIG"
	case ErrValidation:
		return "VALIDATION"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// IOError creates an I/O error for the failing operation on path
func IOError(op, path string, cause error) *TimelyError {
	return New(ErrIO, fmt.Sprintf("%s %s", op, path), cause).
		WithContext("op", op).
		WithContext("path", path)
}

// OverflowError creates a buffer overflow error
func OverflowError(path string, capacity int) *TimelyError {
	return New(ErrOverflow, fmt.Sprintf("buffer overflow on file %s", path), nil).
		WithContext("path", path).
		WithContext("capacity", capacity)
}

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *TimelyError {
	return New(ErrConfig, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *TimelyError {
	return New(ErrValidation, message, cause)
}
