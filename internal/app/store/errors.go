package store

import "errors"

// Sentinel errors returned by the user store. Handlers translate these into
// the application error codes; everything else propagates as an internal fault.
var (
	// ErrUserNotFound indicates the referenced username has no record.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates a create hit an already-taken username.
	ErrUserExists = errors.New("user already exists")

	// ErrNoteNotFound indicates the referenced note id is absent from the profile.
	ErrNoteNotFound = errors.New("note not found")

	// ErrSelfAssignment indicates an attempt to point a user's assignment at themselves.
	ErrSelfAssignment = errors.New("user cannot be assigned to themselves")

	// ErrCorruptRecord indicates more than one record matched a single username.
	// The table key invariant is broken; the condition is fatal for the request
	// and must never be silently reduced to one of the records.
	ErrCorruptRecord = errors.New("multiple records share one username")
)
