package store

import "errors"

// Sentinel errors returned by [DocumentStore] drivers. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrDocumentNotFound is returned when no document carries the requested
	// id in the collection.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrMalformedID is returned when an id is not in the form the driver
	// assigns (ObjectID hex for MongoDB, UUID for the SQL and memory drivers).
	ErrMalformedID = errors.New("malformed document id")

	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStoreUnavailable is returned when the store cannot be reached
	// (connection refused or lost, server selection timeout, shutdown).
	ErrStoreUnavailable = errors.New("document store is unavailable")

	// ErrUnsupportedDSN is returned when the DSN scheme selects no driver.
	ErrUnsupportedDSN = errors.New("unsupported database URI")

	// ErrInvalidIndex is returned when a unique index is requested on a
	// collection or field name that is not a plain identifier.
	ErrInvalidIndex = errors.New("invalid index definition")
)

// Low-level errors wrapped by the drivers and the gateway when an operation
// fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a query or command fails for a
	// reason other than connectivity or a unique key violation.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan document row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan document rows")

	// ErrEncodingDocument is returned when a record or patch cannot be
	// converted into document fields.
	ErrEncodingDocument = errors.New("error encoding document")

	// ErrDecodingDocument is returned when stored fields cannot be converted
	// back into a record.
	ErrDecodingDocument = errors.New("error decoding document")
)
