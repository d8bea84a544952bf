package storage

import (
	"errors"
	"fmt"
)

// =============================================================================
// Sentinel Errors
// =============================================================================

var (
	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrInvalidCount is returned when a seed count is negative.
	ErrInvalidCount = errors.New("item count must be non-negative")
)

// =============================================================================
// Structured Error Type
// =============================================================================

// StorageError wraps storage operation errors with the failed operation.
// It supports errors.Unwrap for sentinel error checking with errors.Is().
type StorageError struct {
	// Op is the operation that failed (e.g., "Items", "Count", "Seed").
	Op string

	// Err is the underlying error that occurred.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsUnavailable returns true if the error indicates the store could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
