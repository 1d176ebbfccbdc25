package repository

import "github.com/perennial/grove/internal/repository/repoerr"

// The sentinel error values live in the leaf package repoerr so domain
// packages can use them without importing the interfaces defined here.
// They are re-exported under their original names; error identity is
// preserved, so errors.Is matches across both packages.
var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = repoerr.ErrNotFound

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = repoerr.ErrForeignKeyViolation

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = repoerr.ErrInvalidInput
)
