package store

import "errors"

// Every failure in this package originates at the directory-service boundary
// and leaves the store in a valid, queryable state. Callers distinguish the
// cases with errors.Is.
var (
	// ErrFetchFailed means the collection load failed; the authoritative
	// collection remains whatever it was (typically empty).
	ErrFetchFailed = errors.New("failed to fetch collection")

	// ErrMutationRejected means a create or update was refused upstream;
	// no state change was applied.
	ErrMutationRejected = errors.New("mutation rejected")

	// ErrDeleteRejected means an optimistic delete failed upstream and the
	// record has been rolled back into the collection.
	ErrDeleteRejected = errors.New("delete rejected")

	// ErrValidationFailed means a caller-supplied record failed schema
	// constraints before any network call was made.
	ErrValidationFailed = errors.New("validation failed")
)
