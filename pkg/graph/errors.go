package graph

import "errors"

// Common sentinel errors
var (
	ErrInvalidVertex      = errors.New("vertex out of range")
	ErrSelfLoop           = errors.New("self-loops are not supported")
	ErrInvalidVertexCount = errors.New("vertex count must be non-negative")
)
