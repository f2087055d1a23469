package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string, cause error) *DocError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *DocError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DocError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Filesystem errors

// FileSystemError wraps a failed filesystem call. The original error stays
// reachable through Unwrap so callers can still test for fs.ErrNotExist and
// friends.
func FileSystemError(operation, path string, cause error) *DocError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, operation+" failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *DocError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
