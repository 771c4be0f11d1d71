/*
Package identity extracts the caller's claimed identity from the Authorization header.

The header carries a bearer-style credential of the form "<scheme> <token>" where the
token is the claimed username. Credential validation is owned by an upstream
collaborator; this package only extracts the claim and attaches it to the request
context so handlers never parse credentials themselves.
*/
package identity

import (
	"context"
	"net/http"
	"strings"

	"confidentialclaus/internal/pkg/errs"
	"confidentialclaus/internal/pkg/resp"
)

// Define Context Key for storing the identity, preventing key collisions with other packages.
type contextKey string

const (
	// ContextIdentityKey is the key used to store the authenticated username in the request Context.
	ContextIdentityKey contextKey = "auth_identity"
)

// Extract parses an Authorization header value and returns the claimed username.
// The header must contain a space-separated scheme and token; the token, not the
// scheme, is the identity.
func Extract(authHeader string) (string, *errs.CustomError) {
	if authHeader == "" {
		return "", errs.NewError(errs.ErrAuthenticationFailure)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", errs.NewError(errs.ErrAuthenticationFailure)
	}

	return parts[1], nil
}

// RequireIdentity is a middleware that extracts the claimed identity from the request
// and injects it into the Context. A missing or malformed credential terminates the
// request with an authentication failure; handlers behind this middleware can rely
// on FromRequest returning a non-empty username.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := Extract(r.Header.Get("Authorization"))
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ContextIdentityKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromRequest safely extracts the authenticated username from the request Context.
// It returns the empty string when no identity was attached.
func FromRequest(r *http.Request) string {
	username, ok := r.Context().Value(ContextIdentityKey).(string)
	if !ok {
		return ""
	}

	return username
}
