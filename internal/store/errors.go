package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrFolderNameAlreadyExists is returned when an insert or rename
	// violates the per-owner folder name uniqueness constraint.
	ErrFolderNameAlreadyExists = errors.New("folder name already exists")

	// ErrTagNameAlreadyExists is returned when an insert or rename violates
	// the per-owner tag name uniqueness constraint.
	ErrTagNameAlreadyExists = errors.New("tag name already exists")

	// ErrFolderNotFound is returned when a folder lookup or mutation scoped
	// by (folder_id, user_id) matches no rows. A folder that exists but
	// belongs to another user is indistinguishable from one that never
	// existed.
	ErrFolderNotFound = errors.New("folder was not found")

	// ErrTagNotFound is returned when a tag lookup or mutation scoped by
	// (tag_id, user_id) matches no rows.
	ErrTagNotFound = errors.New("tag was not found")

	// ErrNoteNotFound is returned when a note lookup or mutation scoped by
	// (note_id, user_id) matches no rows.
	ErrNoteNotFound = errors.New("note was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
