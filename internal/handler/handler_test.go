package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confidentialclaus/internal/app/authz"
	"confidentialclaus/internal/app/store"
	"confidentialclaus/internal/app/user"
	"confidentialclaus/internal/configs"
	"confidentialclaus/internal/pkg/errs"
)

// fakeStore is an in-memory UserStore preserving insertion order.
type fakeStore struct {
	mu    sync.Mutex
	users []user.User

	// updates records every applied profile update per username.
	updates map[string][]user.Update
}

func newFakeStore(users ...user.User) *fakeStore {
	return &fakeStore{
		users:   users,
		updates: make(map[string][]user.Update),
	}
}

func (f *fakeStore) find(username string) int {
	for i := range f.users {
		if f.users[i].Username == username {
			return i
		}
	}
	return -1
}

func (f *fakeStore) GetUser(_ context.Context, username string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(username)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", store.ErrUserNotFound, username)
	}
	u := f.users[i]
	return &u, nil
}

func (f *fakeStore) GetAllUsers(_ context.Context) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]user.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeStore) CreateUser(_ context.Context, newUser user.NewUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.find(newUser.Username) >= 0 {
		return fmt.Errorf("%w: %s", store.ErrUserExists, newUser.Username)
	}
	f.users = append(f.users, user.User{NewUser: newUser, Notes: []user.Note{}})
	return nil
}

func (f *fakeStore) UpdateUser(_ context.Context, username string, update user.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.find(username) < 0 {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, username)
	}
	f.updates[username] = append(f.updates[username], update)
	return nil
}

func (f *fakeStore) AddNote(_ context.Context, username string, note user.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(username)
	if i < 0 {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, username)
	}
	f.users[i].Notes = append(f.users[i].Notes, note)
	return nil
}

func (f *fakeStore) DeleteNote(_ context.Context, username string, noteID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(username)
	if i < 0 {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, username)
	}
	for j, note := range f.users[i].Notes {
		if note.ID == noteID {
			f.users[i].Notes = append(f.users[i].Notes[:j], f.users[i].Notes[j+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", store.ErrNoteNotFound, noteID)
}

func (f *fakeStore) AssignUser(_ context.Context, giverUsername, receiverUsername string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if giverUsername == receiverUsername {
		return fmt.Errorf("%w: %s", store.ErrSelfAssignment, giverUsername)
	}
	if f.find(receiverUsername) < 0 {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, receiverUsername)
	}
	i := f.find(giverUsername)
	if i < 0 {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, giverUsername)
	}
	f.users[i].AssignedUser = receiverUsername
	return nil
}

func registered(username string) user.User {
	return user.User{
		NewUser: user.NewUser{
			Username:  username,
			FirstName: strings.ToUpper(username[:1]) + username[1:],
			LastName:  "Lee",
			Address:   user.Address{Line1: "1 Rd", City: "X", State: "Y", Zip: "12345"},
		},
		Notes: []user.Note{},
	}
}

// newTestRouter builds a router over a fresh fake store; "admin" is the
// only allow-listed administrator.
func newTestRouter(users ...user.User) (*fakeStore, http.Handler) {
	fake := newFakeStore(users...)
	deps := &AppDeps{
		Config:     &configs.AppConfig{Environment: "development"},
		Store:      fake,
		Authorizer: authz.New([]string{"admin"}),
	}
	return fake, Router(deps)
}

type envelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func doRequest(t *testing.T, router http.Handler, method, path, caller, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, path, reader)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		r.Header.Set("Authorization", "Bearer "+caller)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestCreateUser(t *testing.T) {
	validBody := `{"username":"ann","firstName":"Ann","lastName":"Lee","address":{"line1":"1 Rd","city":"X","state":"Y","zip":"12345"}}`

	t.Run("success", func(t *testing.T) {
		fake, router := newTestRouter()

		w, env := doRequest(t, router, http.MethodPost, "/user", "", validBody)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, env.Code)

		require.Len(t, fake.users, 1)
		assert.Equal(t, "ann", fake.users[0].Username)
		assert.NotNil(t, fake.users[0].Notes)
	})

	t.Run("collects all validation errors", func(t *testing.T) {
		_, router := newTestRouter()

		w, env := doRequest(t, router, http.MethodPost, "/user", "", `{"username":"a nn","firstName":"","address":{"line1":"1 Rd"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.ErrInvalidParams, env.Code)
		assert.Contains(t, env.Message, "username is empty or contains spaces")
		assert.Contains(t, env.Message, "firstName is empty")
		assert.Contains(t, env.Message, "zip is empty")
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, router := newTestRouter(registered("ann"))

		w, env := doRequest(t, router, http.MethodPost, "/user", "", validBody)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, errs.ErrUserAlreadyExists, env.Code)
	})
}

func TestListUsers(t *testing.T) {
	_, router := newTestRouter(registered("ann"), registered("bob"))

	w, env := doRequest(t, router, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"ann", "bob"}, env.Data["users"])
}

func TestGetProfileShaping(t *testing.T) {
	ann := registered("ann")
	ann.AssignedUser = "bob"
	ann.Notes = []user.Note{{ID: "note0001", Message: "ho ho ho"}}

	t.Run("owner sees assignment but not notes", func(t *testing.T) {
		_, router := newTestRouter(ann, registered("bob"))

		w, env := doRequest(t, router, http.MethodGet, "/profile/ann", "ann", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, env.Data, "assignedUser")
		assert.NotContains(t, env.Data, "notes")
		assert.Equal(t, "bob", env.Data["assignedUser"])
		assert.Equal(t, "Ann", env.Data["firstName"])
	})

	t.Run("other registered user sees notes but not assignment", func(t *testing.T) {
		_, router := newTestRouter(ann, registered("bob"))

		w, env := doRequest(t, router, http.MethodGet, "/profile/ann", "bob", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, env.Data, "notes")
		assert.NotContains(t, env.Data, "assignedUser")
	})

	t.Run("missing credential fails authentication", func(t *testing.T) {
		_, router := newTestRouter(ann)

		w, env := doRequest(t, router, http.MethodGet, "/profile/ann", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, errs.ErrAuthenticationFailure, env.Code)
	})

	t.Run("unregistered caller is rejected without revealing existence", func(t *testing.T) {
		_, router := newTestRouter(ann)

		wExisting, envExisting := doRequest(t, router, http.MethodGet, "/profile/ann", "eve", "")
		wGhost, envGhost := doRequest(t, router, http.MethodGet, "/profile/ghost", "eve", "")

		assert.Equal(t, http.StatusForbidden, wExisting.Code)
		assert.Equal(t, wExisting.Code, wGhost.Code)
		assert.Equal(t, envExisting.Code, envGhost.Code)
		assert.Equal(t, envExisting.Message, envGhost.Message)
	})

	t.Run("registered caller gets NotFound for missing profile", func(t *testing.T) {
		_, router := newTestRouter(ann, registered("bob"))

		w, env := doRequest(t, router, http.MethodGet, "/profile/ghost", "bob", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, errs.ErrUserNotFound, env.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("self update applied", func(t *testing.T) {
		fake, router := newTestRouter(registered("ann"))

		w, env := doRequest(t, router, http.MethodPut, "/profile/ann", "ann", `{"firstName":"Anna","address":{"zip":"99999"}}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, env.Code)

		require.Len(t, fake.updates["ann"], 1)
		applied := fake.updates["ann"][0]
		require.NotNil(t, applied.FirstName)
		assert.Equal(t, "Anna", *applied.FirstName)
		require.NotNil(t, applied.Address)
		require.NotNil(t, applied.Address.Zip)
		assert.Nil(t, applied.Address.City)
	})

	t.Run("other user is unauthorized", func(t *testing.T) {
		fake, router := newTestRouter(registered("ann"), registered("bob"))

		w, env := doRequest(t, router, http.MethodPut, "/profile/ann", "bob", `{"firstName":"Anna"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, errs.ErrUnauthorized, env.Code)
		assert.Empty(t, fake.updates["ann"])
	})
}

func TestNotes(t *testing.T) {
	t.Run("cannot note own profile", func(t *testing.T) {
		_, router := newTestRouter(registered("ann"))

		w, env := doRequest(t, router, http.MethodPut, "/profile/ann/note", "ann", `{"message":"hi"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, errs.ErrUnauthorized, env.Code)
	})

	t.Run("other user appends and receives generated id", func(t *testing.T) {
		fake, router := newTestRouter(registered("ann"), registered("bob"))

		w, env := doRequest(t, router, http.MethodPut, "/profile/ann/note", "bob", `{"message":"hi"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		id, ok := env.Data["id"].(string)
		require.True(t, ok)
		assert.Len(t, id, 8)

		require.Len(t, fake.users[0].Notes, 1)
		assert.Equal(t, id, fake.users[0].Notes[0].ID)
		assert.Equal(t, "hi", fake.users[0].Notes[0].Message)
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		_, router := newTestRouter(registered("ann"), registered("bob"))

		w, env := doRequest(t, router, http.MethodPut, "/profile/ann/note", "bob", `{"message":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.ErrInvalidParams, env.Code)
	})

	t.Run("delete requires id parameter", func(t *testing.T) {
		_, router := newTestRouter(registered("ann"), registered("bob"))

		w, env := doRequest(t, router, http.MethodDelete, "/profile/ann/note", "bob", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.ErrInvalidParams, env.Code)
	})

	t.Run("delete removes note by id", func(t *testing.T) {
		ann := registered("ann")
		ann.Notes = []user.Note{{ID: "note0001", Message: "hi"}}
		fake, router := newTestRouter(ann, registered("bob"))

		w, _ := doRequest(t, router, http.MethodDelete, "/profile/ann/note?id=note0001", "bob", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, fake.users[0].Notes)
	})

	t.Run("delete unknown note is NotFound", func(t *testing.T) {
		_, router := newTestRouter(registered("ann"), registered("bob"))

		w, env := doRequest(t, router, http.MethodDelete, "/profile/ann/note?id=missing1", "bob", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, errs.ErrNoteNotFound, env.Code)
	})
}

func TestAssignAll(t *testing.T) {
	t.Run("non-admin is unauthorized", func(t *testing.T) {
		_, router := newTestRouter(registered("ann"), registered("bob"))

		w, env := doRequest(t, router, http.MethodPut, "/admin/assign-all", "ann", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, errs.ErrUnauthorized, env.Code)
	})

	t.Run("assigns every user a different recipient", func(t *testing.T) {
		fake, router := newTestRouter(registered("admin"), registered("ann"), registered("bob"), registered("cal"))

		w, env := doRequest(t, router, http.MethodPut, "/admin/assign-all", "admin", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, env.Code)

		receivers := make(map[string]struct{})
		for _, u := range fake.users {
			require.NotEmpty(t, u.AssignedUser, "user %s has no assignment", u.Username)
			assert.NotEqual(t, u.Username, u.AssignedUser)
			receivers[u.AssignedUser] = struct{}{}
		}
		assert.Len(t, receivers, len(fake.users))
	})

	t.Run("single participant cannot be deranged", func(t *testing.T) {
		_, router := newTestRouter(registered("admin"))

		w, env := doRequest(t, router, http.MethodPut, "/admin/assign-all", "admin", "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, errs.ErrTooFewParticipants, env.Code)
	})
}

func TestAssignOne(t *testing.T) {
	t.Run("admin assigns a pair", func(t *testing.T) {
		fake, router := newTestRouter(registered("admin"), registered("ann"), registered("bob"))

		w, _ := doRequest(t, router, http.MethodPut, "/admin/assign/ann", "admin", `{"assignedUser":"bob"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", fake.users[1].AssignedUser)
	})

	t.Run("non-admin is unauthorized", func(t *testing.T) {
		_, router := newTestRouter(registered("ann"), registered("bob"))

		w, env := doRequest(t, router, http.MethodPut, "/admin/assign/ann", "bob", `{"assignedUser":"bob"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, errs.ErrUnauthorized, env.Code)
	})

	t.Run("missing receiver is NotFound", func(t *testing.T) {
		_, router := newTestRouter(registered("admin"), registered("ann"))

		w, env := doRequest(t, router, http.MethodPut, "/admin/assign/ann", "admin", `{"assignedUser":"ghost"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, errs.ErrUserNotFound, env.Code)
	})

	t.Run("self assignment is rejected", func(t *testing.T) {
		_, router := newTestRouter(registered("admin"), registered("ann"))

		w, env := doRequest(t, router, http.MethodPut, "/admin/assign/ann", "admin", `{"assignedUser":"ann"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.ErrSelfAssignment, env.Code)
	})
}

func TestUnmatchedRouteIsNoActivity(t *testing.T) {
	_, router := newTestRouter()

	w, env := doRequest(t, router, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errs.ErrNoActivity, env.Code)

	// Registered path, unregistered method.
	w, env = doRequest(t, router, http.MethodDelete, "/users", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errs.ErrNoActivity, env.Code)
}
