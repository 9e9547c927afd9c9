package store

import "errors"

// Sentinel errors returned by every [BlobStore] implementation. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrBlobNotFound is returned when no object exists at the requested
	// path.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrVersionConflict is returned when a conditional write or delete
	// presented a tag that is not the current one, or a create-only write
	// hit an existing object.
	ErrVersionConflict = errors.New("blob version conflict")

	// ErrUnauthorized is returned when the store rejected the presented
	// credential.
	ErrUnauthorized = errors.New("blob store rejected credential")

	// ErrPermissionDenied is returned when the credential is valid but not
	// allowed to perform the operation.
	ErrPermissionDenied = errors.New("blob store permission denied")

	// ErrTransport is returned for network failures and unexpected
	// responses from a remote store.
	ErrTransport = errors.New("blob store transport error")

	// ErrInvalidPath is returned for empty or malformed object paths.
	ErrInvalidPath = errors.New("invalid blob path")
)

// Low-level database operation errors wrapped by the SQL-backed store.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan blob row")

	// ErrUnsupportedDriver is returned for database drivers other than
	// postgres and sqlite.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
