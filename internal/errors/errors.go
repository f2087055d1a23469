// Package errors provides a lightweight structured error type (DocError)
// for category-based classification in the localizer and CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a docloc error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Filesystem errors raised while walking or copying the docs tree
	CategoryFileSystem ErrorCategory = "filesystem"

	// Unclassified errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// DocError is a structured error with category, severity and context
type DocError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping so errors.Is reaches the cause.
func (e *DocError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocError) WithContext(key string, value any) *DocError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocError {
	return &DocError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocError {
	return &DocError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first DocError in err's chain.
func As(err error) (*DocError, bool) {
	var de *DocError
	if stdErrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if de, ok := As(err); ok {
		return de.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocError
func GetCategory(err error) ErrorCategory {
	if de, ok := As(err); ok {
		return de.Category
	}
	return CategoryInternal
}
