package store

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")

	// ErrAlreadyInitialized is returned by CreateFirstAdmin once the setup
	// marker exists or any user has been created.
	ErrAlreadyInitialized = errors.New("already initialized")

	// ErrNotInitialized is returned by CreateUser before the first admin
	// exists. Only CreateFirstAdmin may create the first user.
	ErrNotInitialized = errors.New("not initialized")
)
