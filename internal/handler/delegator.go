/*
Package handler provides the HTTP handlers and routing setup for the
Confidential Claus server.

This file defines the Delegator, the registry mapping each (path, method)
pair to its activity. Dispatch is exact: a pair with no registered activity
is rejected, with no wildcard fallback beyond the path parameters the router
resolves. Activities marked as authenticated run behind identity extraction,
so handlers read the caller's claimed username from the request context and
never parse credentials themselves.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"confidentialclaus/internal/pkg/auth/identity"
	"confidentialclaus/internal/pkg/errs"
	"confidentialclaus/internal/pkg/resp"
)

// activity is one registered route target.
type activity struct {
	handler       http.HandlerFunc
	requiresIdent bool
}

// Delegator maps (path, method) pairs to activities and mounts them onto a
// chi router.
type Delegator struct {
	activities map[string]map[string]activity
}

// NewDelegator returns an empty Delegator.
func NewDelegator() *Delegator {
	return &Delegator{
		activities: make(map[string]map[string]activity),
	}
}

// Handle registers an activity reachable without credentials.
func (d *Delegator) Handle(path, method string, handler http.HandlerFunc) {
	d.register(path, method, activity{handler: handler})
}

// HandleAuthed registers an activity that requires a claimed identity.
// The activity runs behind identity.RequireIdentity, so a missing or
// malformed Authorization header is rejected before the activity is invoked.
func (d *Delegator) HandleAuthed(path, method string, handler http.HandlerFunc) {
	d.register(path, method, activity{handler: handler, requiresIdent: true})
}

func (d *Delegator) register(path, method string, a activity) {
	if _, ok := d.activities[path]; !ok {
		d.activities[path] = make(map[string]activity)
	}
	d.activities[path][method] = a
}

// Lookup returns the handler registered for the exact (path, method) pair,
// or a NoActivity error when none is configured.
func (d *Delegator) Lookup(path, method string) (http.HandlerFunc, *errs.CustomError) {
	methods, ok := d.activities[path]
	if !ok {
		return nil, errs.NewError(errs.ErrNoActivity)
	}
	a, ok := methods[method]
	if !ok {
		return nil, errs.NewError(errs.ErrNoActivity)
	}

	if a.requiresIdent {
		wrapped := identity.RequireIdentity(a.handler)
		return wrapped.ServeHTTP, nil
	}
	return a.handler, nil
}

// Mount registers every activity on the router and installs NoActivity
// responses for unmatched paths and methods.
func (d *Delegator) Mount(r chi.Router) {
	for path, methods := range d.activities {
		for method := range methods {
			handler, err := d.Lookup(path, method)
			if err != nil {
				// Unreachable: Lookup only fails for unregistered pairs.
				continue
			}
			r.Method(method, path, handler)
		}
	}

	noActivity := func(w http.ResponseWriter, r *http.Request) {
		resp.RespondError(w, r, errs.NewError(errs.ErrNoActivity))
	}
	r.NotFound(noActivity)
	r.MethodNotAllowed(noActivity)
}
