/*
Package authz implements the authorization decisions gating every operation.

All predicates are pure and share one gate: a caller whose username is not in
the supplied roster is authorized for nothing. Callers are expected to fetch
the roster fresh for every check rather than cache it, so a removed user loses
their privileges immediately.
*/
package authz

// Authorizer evaluates authorization predicates against a fixed administrator
// allow-list. The allow-list is injected once at startup and never mutated.
type Authorizer struct {
	admins map[string]struct{}
}

// New builds an Authorizer from the administrator allow-list.
func New(adminUsers []string) *Authorizer {
	admins := make(map[string]struct{}, len(adminUsers))
	for _, username := range adminUsers {
		admins[username] = struct{}{}
	}
	return &Authorizer{admins: admins}
}

// registered reports whether the username appears in the roster.
func registered(username string, roster []string) bool {
	for _, member := range roster {
		if member == username {
			return true
		}
	}
	return false
}

// AuthorizeUser reports whether the authenticated caller is registered and is
// the requested user. Gates viewing and editing one's own profile.
func (a *Authorizer) AuthorizeUser(authenticated, requested string, roster []string) bool {
	return registered(authenticated, roster) && authenticated == requested
}

// AuthorizeNotUser reports whether the authenticated caller is registered and
// is not the requested user. Gates leaving and removing notes on someone
// else's profile; self-notes are forbidden.
func (a *Authorizer) AuthorizeNotUser(authenticated, requested string, roster []string) bool {
	return registered(authenticated, roster) && authenticated != requested
}

// AuthorizeAdmin reports whether the authenticated caller is registered and a
// member of the administrator allow-list.
func (a *Authorizer) AuthorizeAdmin(authenticated string, roster []string) bool {
	if !registered(authenticated, roster) {
		return false
	}
	_, ok := a.admins[authenticated]
	return ok
}
