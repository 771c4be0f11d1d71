/*
Package handler provides HTTP handler functions for viewing and updating profiles.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"confidentialclaus/internal/app/user"
	"confidentialclaus/internal/pkg/auth/identity"
	"confidentialclaus/internal/pkg/errs"
	"confidentialclaus/internal/pkg/req"
	"confidentialclaus/internal/pkg/resp"
)

// requestedUser extracts the username path parameter.
func requestedUser(r *http.Request) (string, *errs.CustomError) {
	username := chi.URLParam(r, "username")
	if username == "" {
		return "", errs.NewError(errs.ErrInvalidParams, "no username path parameter provided")
	}
	return username, nil
}

// HandleGetProfile returns a profile shaped by who is asking. The owner sees
// their assignment pointer but never their own notes (they are anonymous by
// design); any other registered user sees the notes but not the assignment.
// Unregistered callers are rejected before the record is fetched, so the
// response does not reveal whether the profile exists.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requested, paramErr := requestedUser(r)
		if paramErr != nil {
			resp.RespondError(w, r, paramErr)
			return
		}

		authenticated := identity.FromRequest(r)
		roster, rosterErr := deps.roster(r.Context())
		if rosterErr != nil {
			resp.RespondError(w, r, rosterErr)
			return
		}

		isSelf := deps.Authorizer.AuthorizeUser(authenticated, requested, roster)
		isOther := deps.Authorizer.AuthorizeNotUser(authenticated, requested, roster)
		if !isSelf && !isOther {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		u, err := deps.Store.GetUser(r.Context(), requested)
		if err != nil {
			resp.RespondError(w, r, mapStoreError(err, requested))
			return
		}

		profile := map[string]any{
			"username":  u.Username,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"address":   u.Address,
		}

		if isSelf {
			profile["assignedUser"] = u.AssignedUser
		} else {
			notes := u.Notes
			if notes == nil {
				notes = []user.Note{}
			}
			profile["notes"] = notes
		}

		resp.RespondSuccess(w, r, profile)
	}
}

// HandleUpdateProfile applies a sparse update to the caller's own profile.
// Absent fields are left untouched; an update with no concrete fields issues
// no write at all.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requested, paramErr := requestedUser(r)
		if paramErr != nil {
			resp.RespondError(w, r, paramErr)
			return
		}

		var update user.Update
		if bindErr := req.BindJSON(r, &update); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		authenticated := identity.FromRequest(r)
		roster, rosterErr := deps.roster(r.Context())
		if rosterErr != nil {
			resp.RespondError(w, r, rosterErr)
			return
		}

		if !deps.Authorizer.AuthorizeUser(authenticated, requested, roster) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Store.UpdateUser(r.Context(), requested, update); err != nil {
			resp.RespondError(w, r, mapStoreError(err, requested))
			return
		}

		resp.RespondEmpty(w, r)
	}
}
