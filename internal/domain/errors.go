package domain

import "errors"

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a storage-level uniqueness constraint
	// rejects an insert (duplicate application, saved job, or conversation).
	ErrAlreadyExists = errors.New("resource already exists")
)
