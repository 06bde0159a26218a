package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested role does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a role with the same name already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input, such as an empty
	// name or a role name containing the reserved separator.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPopulatedRole indicates a role cannot be deleted because it still has members.
	ErrPopulatedRole = errors.New("role is populated")

	// Storage Errors.

	// ErrStoreUnavailable indicates the persisted role storage could not be read or written.
	ErrStoreUnavailable = errors.New("role store unavailable")

	// ErrStoreCorrupt indicates the persisted role data could not be parsed.
	ErrStoreCorrupt = errors.New("role store corrupt")

	// ErrStoreClosed indicates the role store has been closed.
	ErrStoreClosed = errors.New("role store closed")
)
