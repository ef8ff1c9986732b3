package clustering

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidVertex        = errors.New("vertex out of range")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrUnknownStrategy      = errors.New("unknown counting strategy")
)

// CountError provides structured error information for counting operations.
type CountError struct {
	Op      string // Operation that failed (e.g., "Count", "CountVertex")
	Vertex  int    // Vertex ID (if applicable, -1 otherwise)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *CountError) Error() string {
	if e.Vertex >= 0 {
		return fmt.Sprintf("%s vertex %d: %v", e.Op, e.Vertex, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *CountError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *CountError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// invalidVertexError builds a CountError for an out-of-range vertex.
func invalidVertexError(op string, v, vertexCount int) error {
	return &CountError{
		Op:      op,
		Vertex:  v,
		Cause:   ErrInvalidVertex,
		Context: fmt.Sprintf("vertex count %d", vertexCount),
	}
}

// tableSizeError builds a CountError for a marker table size mismatch.
func tableSizeError(op string, tableSize, vertexCount int) error {
	return &CountError{
		Op:      op,
		Vertex:  -1,
		Cause:   ErrInvalidConfiguration,
		Context: fmt.Sprintf("marker table size %d, vertex count %d", tableSize, vertexCount),
	}
}
