package model

import "errors"

var (
	// ErrInvalidArgument is returned when a required input is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOperation is returned when an operation is structurally
	// impossible regardless of input shape, e.g. a user following itself.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrUnauthorized is returned when an action requires a logged-in user
	// and there is none.
	ErrUnauthorized = errors.New("not logged in")

	// ErrForbidden is returned when the current user lacks ownership or
	// authorship of the target entity.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
)
