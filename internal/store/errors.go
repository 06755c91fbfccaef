package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntityNotFound is returned when a lookup by primary key matches
	// no row of the local store.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrInvalidCursor is returned when a query cursor cannot be decoded or
	// belongs to another record type.
	ErrInvalidCursor = errors.New("invalid query cursor")

	// ErrAssetNotFound is returned by asset stores for a missing object.
	ErrAssetNotFound = errors.New("asset was not found")

	// ErrSavePolicyUnknown is returned for a modify request naming a save
	// policy other than "changed_keys" or "all_keys".
	ErrSavePolicyUnknown = errors.New("unknown save policy")

	// ErrAssetChecksum is returned when an asset body does not match the
	// checksum sent or stored with it.
	ErrAssetChecksum = errors.New("asset checksum mismatch")
)

// Low-level database operation errors. These are returned (or wrapped) by
// store methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
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

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
