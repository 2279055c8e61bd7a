package repository

import "github.com/venturly/venturly/internal/repository/errs"

// The sentinel values live in the errs leaf package so domain packages can
// import them without a cycle; they are re-exported here so callers of
// repository.Err* are unaffected and errors.Is identity is preserved.
var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errs.ErrNotFound

	// ErrConflict is returned when an optimistic concurrency check fails
	ErrConflict = errs.ErrConflict

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errs.ErrForeignKeyViolation

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errs.ErrInvalidInput
)
