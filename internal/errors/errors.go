// Package errors provides a lightweight structured error type (SnipdocError)
// for category-based classification and exit-code mapping in the CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a snipdoc error for classification.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"

	// Structural document errors (front-matter, fences, heading nesting)
	CategoryParse ErrorCategory = "parse"

	// Snippet validation failures (non-fatal unless strict mode)
	CategoryValidation ErrorCategory = "validation"

	// Render invariant violations (output path collisions, template faults)
	CategoryRender ErrorCategory = "render"

	// Operator-triggered cancellation
	CategoryCancelled ErrorCategory = "cancelled"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// SnipdocError is a structured error with category, severity, and context.
type SnipdocError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for SnipdocError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *SnipdocError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *SnipdocError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *SnipdocError) WithContext(key string, value any) *SnipdocError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new SnipdocError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *SnipdocError {
	return &SnipdocError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new SnipdocError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *SnipdocError {
	return &SnipdocError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	if se, ok := err.(*SnipdocError); ok {
		return se.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if it is not a SnipdocError.
func GetCategory(err error) ErrorCategory {
	if se, ok := err.(*SnipdocError); ok {
		return se.Category
	}
	return CategoryInternal
}
