/*
Package handler provides HTTP handler functions for user registration and listing.
*/
package handler

import (
	"net/http"
	"strings"

	"confidentialclaus/internal/app/user"
	"confidentialclaus/internal/pkg/errs"
	"confidentialclaus/internal/pkg/logx"
	"confidentialclaus/internal/pkg/req"
	"confidentialclaus/internal/pkg/resp"
)

// HandleCreateUser registers a new user. All field violations are collected
// and reported together; a duplicate username is a conflict.
func HandleCreateUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newUser user.NewUser
		if bindErr := req.BindJSON(r, &newUser); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		if invalid := newUser.Validate(); len(invalid) > 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, strings.Join(invalid, ", ")))
			return
		}

		if err := deps.Store.CreateUser(r.Context(), newUser); err != nil {
			resp.RespondError(w, r, mapStoreError(err, newUser.Username))
			return
		}

		logx.Info("User created", "username", newUser.Username)
		resp.RespondEmpty(w, r)
	}
}

// HandleListUsers returns the usernames of every registered user.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usernames, rosterErr := deps.roster(r.Context())
		if rosterErr != nil {
			resp.RespondError(w, r, rosterErr)
			return
		}

		if usernames == nil {
			usernames = []string{}
		}

		resp.RespondSuccess(w, r, map[string]any{
			"users": usernames,
		})
	}
}
