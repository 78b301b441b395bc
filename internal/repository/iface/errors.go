package repository

import "errors"

// ErrNotFound indicates that the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a conditional write collided with an existing record.
var ErrConflict = errors.New("record already exists")

// IsNotFoundError checks if an error indicates a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflictError checks if an error indicates a write conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}
