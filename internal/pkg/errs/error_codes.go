/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrMissingBody indicates that a route requiring a request body received none.
	ErrMissingBody = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: User, Note, and Assignment Business Logic Errors
const (
	// ErrUserNotFound indicates that the referenced user does not exist.
	ErrUserNotFound = 2101

	// ErrUserAlreadyExists indicates that the username chosen at creation is already taken.
	ErrUserAlreadyExists = 2102

	// ErrNoteNotFound indicates that the referenced note id does not exist on the profile.
	ErrNoteNotFound = 2201

	// ErrSelfAssignment indicates an attempt to assign a user to themselves.
	ErrSelfAssignment = 2301

	// ErrTooFewParticipants indicates that a full assignment was requested with a
	// roster too small to exclude self-assignment.
	ErrTooFewParticipants = 2302
)

// 3xxx: Identity and Authorization Errors
const (
	// ErrAuthenticationFailure indicates a missing or malformed Authorization header.
	ErrAuthenticationFailure = 3001

	// ErrUnauthorized indicates that the caller is not permitted to perform the operation.
	// The same code covers both a failed predicate and an invisible resource,
	// so usernames cannot be enumerated through authorization responses.
	ErrUnauthorized = 3002
)

// 4xxx: Routing Errors
const (
	// ErrNoActivity indicates that no activity is registered for the request path and method.
	ErrNoActivity = 4001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrStoreCorrupt indicates the user table violated a store invariant
	// (e.g., multiple records behind one key). Treated as fatal for the request.
	ErrStoreCorrupt = 5001
)
