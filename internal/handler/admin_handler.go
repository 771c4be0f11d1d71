/*
Package handler provides HTTP handler functions for administrator operations.
*/
package handler

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"confidentialclaus/internal/app/assign"
	"confidentialclaus/internal/pkg/auth/identity"
	"confidentialclaus/internal/pkg/errs"
	"confidentialclaus/internal/pkg/logx"
	"confidentialclaus/internal/pkg/randx"
	"confidentialclaus/internal/pkg/req"
	"confidentialclaus/internal/pkg/resp"
)

// HandleAssignAll assigns every registered user a recipient such that nobody
// is assigned to themselves. The per-giver writes have no ordering dependency
// and are dispatched concurrently; any failure fails the batch as a whole.
// Partial completion is observable and not rolled back.
func HandleAssignAll(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authenticated := identity.FromRequest(r)

		users, err := deps.Store.GetAllUsers(r.Context())
		if err != nil {
			resp.RespondError(w, r, mapStoreError(err, ""))
			return
		}

		roster := make([]string, len(users))
		for i, u := range users {
			roster[i] = u.Username
		}

		if !deps.Authorizer.AuthorizeAdmin(authenticated, roster) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		assigned, err := assign.Derange(users)
		if err != nil {
			if errors.Is(err, assign.ErrTooFewParticipants) {
				resp.RespondError(w, r, errs.NewError(errs.ErrTooFewParticipants))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		batchID := randx.BatchID()
		logx.Info("Starting full assignment", "batch_id", batchID, "participants", len(users))

		g, ctx := errgroup.WithContext(r.Context())
		for i := range users {
			giver := users[i].Username
			receiver := assigned[i].Username
			g.Go(func() error {
				return deps.Store.AssignUser(ctx, giver, receiver)
			})
		}

		if err := g.Wait(); err != nil {
			logx.Error(err, "Full assignment failed", "batch_id", batchID)
			resp.RespondError(w, r, mapStoreError(err, ""))
			return
		}

		logx.Info("Full assignment completed", "batch_id", batchID, "participants", len(users))
		resp.RespondEmpty(w, r)
	}
}

// AssignOneInput is the request body for assigning a single pair.
type AssignOneInput struct {
	AssignedUser string `json:"assignedUser"`
}

// HandleAssignOne points one giver's assignment at the supplied receiver.
func HandleAssignOne(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		giver, paramErr := requestedUser(r)
		if paramErr != nil {
			resp.RespondError(w, r, paramErr)
			return
		}

		var input AssignOneInput
		if bindErr := req.BindJSON(r, &input); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}
		if input.AssignedUser == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "assignedUser must not be empty"))
			return
		}

		authenticated := identity.FromRequest(r)
		roster, rosterErr := deps.roster(r.Context())
		if rosterErr != nil {
			resp.RespondError(w, r, rosterErr)
			return
		}

		if !deps.Authorizer.AuthorizeAdmin(authenticated, roster) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Store.AssignUser(r.Context(), giver, input.AssignedUser); err != nil {
			resp.RespondError(w, r, mapStoreError(err, input.AssignedUser))
			return
		}

		logx.Info("Manual assignment applied", "giver", giver)
		resp.RespondEmpty(w, r)
	}
}
