package store

import "errors"

// Sentinel errors returned by the store and its repositories to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrInvalidDatabaseImage is returned by Open when a file exists at the
	// configured database path but cannot be loaded as a SQLite image.
	// This is fatal: the process must not start against a corrupt file.
	ErrInvalidDatabaseImage = errors.New("database file is not a valid database image")

	// ErrFlushFailed is returned when serializing the in-memory database to
	// disk fails. The mutation that triggered the flush has already been
	// applied in memory; the caller may retry the flush.
	ErrFlushFailed = errors.New("error flushing database to disk")

	// ErrExecutingQuery is returned when executing a read-only statement
	// fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a mutating statement
	// fails. No flush happens in that case.
	ErrExecutingStatement = errors.New("error executing sql statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("error scanning row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("error scanning rows")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an empty column or value set).
	ErrBuildingSQLQuery = errors.New("error building sql query")
)

// Domain-level sentinel errors.
var (
	// ErrNoUserWasFound is returned when a lookup expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUsernameAlreadyExists is returned when creating a user collides
	// with the unique username constraint.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrContactNotFound is returned when an operation targets a contact
	// that does not exist, or is not in the state the operation requires
	// (e.g. restoring a contact that was never soft-deleted).
	ErrContactNotFound = errors.New("contact was not found")
)
