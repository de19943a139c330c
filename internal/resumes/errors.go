package resumes

import "errors"

var (
	// ErrNotFound indicates a ledger row, file, directory, or template
	// is missing.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the owner already has an artifact with the
	// same derived name.
	ErrConflict = errors.New("resume with the same role title and company already exists")

	// ErrMissingTemplate indicates the owner's supervising developer has
	// no uploaded template.
	ErrMissingTemplate = errors.New("no template uploaded by supervisor")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
