// Package errors provides structured error types for webnav. Errors carry a
// category and a stable code so callers can match on them without string
// comparison. The splitter core never returns errors; these types are used
// at the config, command, and IPC boundaries.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeCommand    ErrorType = "command"
	ErrorTypeIPC        ErrorType = "ipc"
	ErrorTypeURL        ErrorType = "url"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error is a structured error with category, code, and optional cause.
type Error struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	parts = append(parts, e.Message)
	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by type and code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a structured error.
func New(errType ErrorType, code, message string) *Error {
	return &Error{Type: errType, Code: code, Message: message}
}

// Newf creates a structured error with a formatted message.
func Newf(errType ErrorType, code, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a structured error.
func Wrap(cause error, errType ErrorType, code, message string) *Error {
	return &Error{Type: errType, Code: code, Message: message, Cause: cause}
}

// IsType reports whether err (or anything it wraps) is a structured error of
// the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}
