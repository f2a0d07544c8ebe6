// Package router sets up all HTTP routes and middleware chains for the
// reviewhub API. Permission enforcement lives in the handlers via the
// policy functions; the router only loads the actor and applies the
// ambient middleware stack.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/handlers"
	"reviewhub/internal/middleware"
	"reviewhub/internal/store"
	"reviewhub/internal/token"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth       *handlers.Auth
	Users      *handlers.Users
	Categories *handlers.Categories
	Genres     *handlers.Genres
	Titles     *handlers.Titles
	Reviews    *handlers.Reviews
	Comments   *handlers.Comments
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *token.Store, users *store.UserStore, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadActor(tokens, users))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints — rate-limited to slow down code guessing and
		// mail flooding.
		r.Route("/auth", func(r chi.Router) {
			limiter := middleware.NewRateLimiter(10, time.Minute)
			r.Use(limiter.Middleware)

			r.Post("/signup", h.Auth.Signup)
			r.Post("/token", h.Auth.Token)
		})

		// User management (admin) and own profile.
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.Users.List)
			r.Post("/", h.Users.Create)
			r.Get("/me", h.Users.Me)
			r.Patch("/me", h.Users.UpdateMe)
			r.Get("/{username}", h.Users.Get)
			r.Patch("/{username}", h.Users.Update)
			r.Delete("/{username}", h.Users.Delete)
		})

		// System-owned taxonomy.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories.List)
			r.Post("/", h.Categories.Create)
			r.Delete("/{slug}", h.Categories.Delete)
		})
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", h.Genres.List)
			r.Post("/", h.Genres.Create)
			r.Delete("/{slug}", h.Genres.Delete)
		})

		// Titles with nested reviews and comments.
		r.Route("/titles", func(r chi.Router) {
			r.Get("/", h.Titles.List)
			r.Post("/", h.Titles.Create)
			r.Get("/{titleID}", h.Titles.Get)
			r.Patch("/{titleID}", h.Titles.Update)
			r.Delete("/{titleID}", h.Titles.Delete)

			r.Route("/{titleID}/reviews", func(r chi.Router) {
				r.Get("/", h.Reviews.List)
				r.Post("/", h.Reviews.Create)
				r.Get("/{reviewID}", h.Reviews.Get)
				r.Patch("/{reviewID}", h.Reviews.Update)
				r.Delete("/{reviewID}", h.Reviews.Delete)

				r.Route("/{reviewID}/comments", func(r chi.Router) {
					r.Get("/", h.Comments.List)
					r.Post("/", h.Comments.Create)
					r.Get("/{commentID}", h.Comments.Get)
					r.Patch("/{commentID}", h.Comments.Update)
					r.Delete("/{commentID}", h.Comments.Delete)
				})
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
