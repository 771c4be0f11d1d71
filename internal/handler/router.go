/*
Package handler provides the HTTP handlers and routing setup for the
Confidential Claus server.

This file defines the main Router, applying middleware like logging, CORS,
and IP-based rate limiting before delegating requests to the registered
activities.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"confidentialclaus/internal/pkg/limiter"
	"confidentialclaus/internal/pkg/logx"
	"confidentialclaus/internal/pkg/resp"
)

const (
	// CreateRate and CreateBurst bound how fast a single IP can register users.
	CreateRate  = 0.1
	CreateBurst = 3
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It configures CORS, applies global middleware, and mounts every activity
// through the Delegator.
func Router(deps *AppDeps) http.Handler {
	createLimiter := limiter.NewIPRateLimiter(rate.Limit(CreateRate), CreateBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Confidential Claus",
		}
		resp.RespondSuccess(w, r, data)
	})

	rateLimitedCreate := createLimiter.Middleware(HandleCreateUser(deps))

	d := NewDelegator()
	d.Handle("/user", http.MethodPost, rateLimitedCreate.ServeHTTP)
	d.Handle("/users", http.MethodGet, HandleListUsers(deps))
	d.HandleAuthed("/profile/{username}", http.MethodGet, HandleGetProfile(deps))
	d.HandleAuthed("/profile/{username}", http.MethodPut, HandleUpdateProfile(deps))
	d.HandleAuthed("/profile/{username}/note", http.MethodPut, HandleAddNote(deps))
	d.HandleAuthed("/profile/{username}/note", http.MethodDelete, HandleDeleteNote(deps))
	d.HandleAuthed("/admin/assign-all", http.MethodPut, HandleAssignAll(deps))
	d.HandleAuthed("/admin/assign/{username}", http.MethodPut, HandleAssignOne(deps))
	d.Mount(r)

	return r
}
