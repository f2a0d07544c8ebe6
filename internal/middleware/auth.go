// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"reviewhub/internal/permissions"
	"reviewhub/internal/store"
	"reviewhub/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// actorKey is the context key for the resolved actor.
const actorKey contextKey = "actor"

// LoadActor resolves the Authorization bearer token into an immutable
// permissions.Actor and stores it in the request context. The user row
// is re-read on every request so role changes and deactivation take
// effect immediately; the Valkey token only proves possession of a
// session. Requests without a valid token proceed as the anonymous
// actor — enforcement belongs to the permission checks, not here.
func LoadActor(tokens *token.Store, users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := permissions.Anonymous

			if raw := bearerToken(r); raw != "" {
				id, err := tokens.Verify(r.Context(), raw)
				switch {
				case err != nil:
					// Fail closed: a backend outage demotes the caller to
					// anonymous rather than erroring, but it is logged as
					// an outage, not as a missing credential.
					slog.Warn("token verification unavailable, treating request as anonymous",
						"error", err, "path", r.URL.Path)
				case id != nil:
					u, err := users.FindByID(id.UserID)
					if err != nil {
						slog.Warn("user lookup failed during authentication, treating request as anonymous",
							"error", err, "path", r.URL.Path)
					} else if u != nil && u.IsActive {
						actor = permissions.Actor{
							ID:            u.ID,
							Role:          u.Role,
							Superuser:     u.Superuser,
							Authenticated: true,
						}
					}
				}
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromCtx extracts the actor from the request context. Returns the
// anonymous actor if LoadActor has not run.
func ActorFromCtx(ctx context.Context) permissions.Actor {
	actor, ok := ctx.Value(actorKey).(permissions.Actor)
	if !ok {
		return permissions.Anonymous
	}
	return actor
}

// WithActor returns a context carrying the given actor. Used by tests to
// simulate the state after LoadActor has run.
func WithActor(ctx context.Context, actor permissions.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// bearerToken extracts the credential from "Authorization: Bearer <tok>".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
