package domain

import "errors"

// Domain errors returned by repository implementations.

var (
	// ErrTodoNotFound indicates the requested todo does not exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrInvalidID indicates the provided ID is not in the store's ID format.
	// Adapters wrap it together with ErrTodoNotFound so callers treat a
	// malformed ID the same as a missing record.
	ErrInvalidID = errors.New("invalid ID format")
)
