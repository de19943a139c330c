package accounts

import "errors"

var (
	// ErrNotFound indicates an account was not found.
	ErrNotFound = errors.New("account not found")

	// ErrConflict indicates a duplicate username.
	ErrConflict = errors.New("username already taken")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates an ownership rule failed. It carries no
	// information about whether the target exists.
	ErrUnauthorized = errors.New("unauthorized")
)
