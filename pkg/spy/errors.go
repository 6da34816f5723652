package spy

import "fmt"

// StorageError represents an error from an aggregation store backend.
type StorageError struct {
	Backend   string // Store backend type ("file", "sqlite", "memory")
	Operation string // Operation that failed ("add_entries", "all_entries", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// ExportError represents an error during report export.
type ExportError struct {
	Format     string // Export format ("json", "html", "console")
	EntryCount int    // Number of entries being exported
	Cause      error  // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [format=%s, entry_count=%d]: %v", e.Format, e.EntryCount, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format string, entryCount int, cause error) *ExportError {
	return &ExportError{
		Format:     format,
		EntryCount: entryCount,
		Cause:      cause,
	}
}

// HookError represents a failure inside a caller-supplied hook callback.
// Hook failures are isolated from the capture pipeline: they are logged,
// never propagated to the test's own control flow.
type HookError struct {
	Phase string // Hook phase ("request", "response", "error")
	Index int    // Registration index of the failing hook
	Cause error  // Underlying error or recovered panic
}

// Error implements the error interface.
func (e *HookError) Error() string {
	return fmt.Sprintf("hook error [phase=%s, index=%d]: %v", e.Phase, e.Index, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *HookError) Unwrap() error {
	return e.Cause
}

// NewHookError creates a new HookError.
func NewHookError(phase string, index int, cause error) *HookError {
	return &HookError{
		Phase: phase,
		Index: index,
		Cause: cause,
	}
}

// RetentionError represents an error during retention pruning.
type RetentionError struct {
	RetentionDays int   // Configured retention period
	Cause         error // Underlying error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention error [retention_days=%d]: %v", e.RetentionDays, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError creates a new RetentionError.
func NewRetentionError(retentionDays int, cause error) *RetentionError {
	return &RetentionError{
		RetentionDays: retentionDays,
		Cause:         cause,
	}
}
