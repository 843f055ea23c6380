package errors

// Convenience constructors for the common categories. These keep call sites
// terse and make the category taxonomy discoverable in one place.

// ParseError constructs a fatal-to-this-document structural error.
func ParseError(message string) *SnipdocError {
	return New(CategoryParse, SeverityError, message)
}

// WrapParse wraps an underlying parser failure.
func WrapParse(err error, message string) *SnipdocError {
	return Wrap(err, CategoryParse, SeverityError, message)
}

// ValidationError constructs a per-snippet validation failure.
func ValidationError(message string) *SnipdocError {
	return New(CategoryValidation, SeverityWarning, message)
}

// RenderError constructs a build-fatal render invariant violation.
func RenderError(message string) *SnipdocError {
	return New(CategoryRender, SeverityFatal, message)
}

// WrapRender wraps an underlying render failure.
func WrapRender(err error, message string) *SnipdocError {
	return Wrap(err, CategoryRender, SeverityFatal, message)
}

// ConfigError constructs an invalid-arguments error.
func ConfigError(message string) *SnipdocError {
	return New(CategoryConfig, SeverityFatal, message)
}

// CancelledError constructs an operator-cancellation marker.
func CancelledError(message string) *SnipdocError {
	return New(CategoryCancelled, SeverityWarning, message)
}

// WrapFS wraps a filesystem failure.
func WrapFS(err error, message string) *SnipdocError {
	return Wrap(err, CategoryFileSystem, SeverityError, message)
}

// Internal constructs an internal invariant violation.
func Internal(message string) *SnipdocError {
	return New(CategoryInternal, SeverityFatal, message)
}
