/*
Package handler provides HTTP handler functions for anonymous profile notes.
*/
package handler

import (
	"errors"
	"net/http"

	"confidentialclaus/internal/app/store"
	"confidentialclaus/internal/app/user"
	"confidentialclaus/internal/pkg/auth/identity"
	"confidentialclaus/internal/pkg/errs"
	"confidentialclaus/internal/pkg/logx"
	"confidentialclaus/internal/pkg/randx"
	"confidentialclaus/internal/pkg/req"
	"confidentialclaus/internal/pkg/resp"
)

// AddNoteInput is the request body for appending a note.
type AddNoteInput struct {
	Message string `json:"message"`
}

// HandleAddNote appends an anonymous note to another user's profile and
// returns the generated note id. Users cannot leave notes on their own profile.
func HandleAddNote(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requested, paramErr := requestedUser(r)
		if paramErr != nil {
			resp.RespondError(w, r, paramErr)
			return
		}

		var input AddNoteInput
		if bindErr := req.BindJSON(r, &input); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}
		if input.Message == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "message must not be empty"))
			return
		}

		authenticated := identity.FromRequest(r)
		roster, rosterErr := deps.roster(r.Context())
		if rosterErr != nil {
			resp.RespondError(w, r, rosterErr)
			return
		}

		if !deps.Authorizer.AuthorizeNotUser(authenticated, requested, roster) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		noteID, err := randx.NoteID()
		if err != nil {
			logx.Error(err, "Failed to generate note ID")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		note := user.Note{ID: noteID, Message: input.Message}
		if err := deps.Store.AddNote(r.Context(), requested, note); err != nil {
			resp.RespondError(w, r, mapStoreError(err, requested))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"id": noteID,
		})
	}
}

// HandleDeleteNote removes a note by id from another user's profile.
// The note id is supplied as the "id" query parameter.
func HandleDeleteNote(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requested, paramErr := requestedUser(r)
		if paramErr != nil {
			resp.RespondError(w, r, paramErr)
			return
		}

		noteID := r.URL.Query().Get("id")
		if noteID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "no note ID provided"))
			return
		}
		if !randx.IsValidNoteID(noteID) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "note ID is malformed"))
			return
		}

		authenticated := identity.FromRequest(r)
		roster, rosterErr := deps.roster(r.Context())
		if rosterErr != nil {
			resp.RespondError(w, r, rosterErr)
			return
		}

		if !deps.Authorizer.AuthorizeNotUser(authenticated, requested, roster) {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Store.DeleteNote(r.Context(), requested, noteID); err != nil {
			if errors.Is(err, store.ErrNoteNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrNoteNotFound, noteID))
				return
			}
			resp.RespondError(w, r, mapStoreError(err, requested))
			return
		}

		resp.RespondEmpty(w, r)
	}
}
