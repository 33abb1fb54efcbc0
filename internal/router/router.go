// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// sharehub API. Reads are public; writes and the caller's own resources
// sit behind bearer-token authentication.
package router

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"sharehub/internal/handlers"
	"sharehub/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	tokens middleware.TokenParser,
	allowedOrigins []string,
	auth *handlers.Auth,
	posts *handlers.Posts,
	categories *handlers.Categories,
	profile *handlers.Profile,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(allowedOrigins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	r.Get("/health", healthHandler)

	requireAuth := middleware.RequireAuth(tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
		})

		r.Get("/category", categories.List)
		r.Get("/search", posts.Search)

		r.Route("/post", func(r chi.Router) {
			// Public reads.
			r.Get("/", posts.List)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", posts.Mine)
				r.Post("/", posts.Create)
				r.Patch("/{id}", posts.Update)
				r.Delete("/{id}", posts.Delete)
				r.Post("/{id}/like", posts.Like)
				r.Post("/{id}/dislike", posts.Dislike)
			})

			// chi matches the static /me before {id}.
			r.Get("/{id}", posts.Get)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", profile.Get)
			r.Patch("/me", profile.Edit)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}
