/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Request had the following errors: %s", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Request body is not valid JSON.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrMissingBody:           {Code: ErrMissingBody, Message: "Request must have a body.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: User, Note, and Assignment Business Logic Errors
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Requested user does not exist: %s", Status: http.StatusNotFound},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "User %s already exists.", Status: http.StatusConflict},
	ErrNoteNotFound:       {Code: ErrNoteNotFound, Message: "Note with ID %s does not exist.", Status: http.StatusNotFound},
	ErrSelfAssignment:     {Code: ErrSelfAssignment, Message: "A user cannot be assigned to themselves.", Status: http.StatusBadRequest},
	ErrTooFewParticipants: {Code: ErrTooFewParticipants, Message: "Cannot self-exclude with only one participant.", Status: http.StatusConflict},

	// 3xxx: Identity and Authorization Errors
	ErrAuthenticationFailure: {Code: ErrAuthenticationFailure, Message: "Missing or malformed credentials.", Status: http.StatusUnauthorized},
	ErrUnauthorized:          {Code: ErrUnauthorized, Message: "You are not allowed to perform this operation.", Status: http.StatusForbidden},

	// 4xxx: Routing Errors
	ErrNoActivity: {Code: ErrNoActivity, Message: "No activity configured for this path and method.", Status: http.StatusNotFound},

	// 5xxx: Internal System Errors
	ErrUnknown:      {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStoreCorrupt: {Code: ErrStoreCorrupt, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
