package handler

import (
	"context"
	"errors"

	"confidentialclaus/internal/app/authz"
	"confidentialclaus/internal/app/store"
	"confidentialclaus/internal/app/user"
	"confidentialclaus/internal/configs"
	"confidentialclaus/internal/pkg/errs"
)

// UserStore is the store facade the handlers depend on.
// Tests substitute a fake implementation.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*user.User, error)
	GetAllUsers(ctx context.Context) ([]user.User, error)
	CreateUser(ctx context.Context, newUser user.NewUser) error
	UpdateUser(ctx context.Context, username string, update user.Update) error
	AddNote(ctx context.Context, username string, note user.Note) error
	DeleteNote(ctx context.Context, username string, noteID string) error
	AssignUser(ctx context.Context, giverUsername, receiverUsername string) error
}

// AppDeps bundles the dependencies shared by all handlers.
type AppDeps struct {
	Config     *configs.AppConfig
	Store      UserStore
	Authorizer *authz.Authorizer
}

// roster fetches the current set of registered usernames. Authorization
// checks call this fresh every time instead of caching, so a removed user
// cannot act on stale privileges.
func (d *AppDeps) roster(ctx context.Context) ([]string, *errs.CustomError) {
	users, err := d.Store.GetAllUsers(ctx)
	if err != nil {
		return nil, mapStoreError(err, "")
	}

	usernames := make([]string, len(users))
	for i, u := range users {
		usernames[i] = u.Username
	}
	return usernames, nil
}

// mapStoreError translates store sentinel errors into application error
// codes. The subject is interpolated into messages that name the missing or
// conflicting resource. Unclassified failures become an internal fault.
func mapStoreError(err error, subject string) *errs.CustomError {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return errs.NewError(errs.ErrUserNotFound, subject)
	case errors.Is(err, store.ErrUserExists):
		return errs.NewError(errs.ErrUserAlreadyExists, subject)
	case errors.Is(err, store.ErrNoteNotFound):
		return errs.NewError(errs.ErrNoteNotFound, subject)
	case errors.Is(err, store.ErrSelfAssignment):
		return errs.NewError(errs.ErrSelfAssignment)
	case errors.Is(err, store.ErrCorruptRecord):
		return errs.NewError(errs.ErrStoreCorrupt)
	default:
		return errs.NewError(errs.ErrUnknown, err)
	}
}
