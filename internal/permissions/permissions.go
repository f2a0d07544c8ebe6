// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package permissions maps (actor, method, resource) to allow/deny.
// Policies are pure functions over an explicit, immutable Actor value;
// no policy reads request or global state. Endpoints compose policies by
// logical AND, except for review/comment mutation where the effective
// rule is author OR moderator OR administrator.
package permissions

import (
	"net/http"

	"github.com/google/uuid"

	"reviewhub/internal/models"
)

// Actor is the identity making a request, possibly anonymous. It is
// built once per request by the middleware and passed explicitly into
// every policy check.
type Actor struct {
	ID            uuid.UUID
	Role          models.Role
	Superuser     bool
	Authenticated bool
}

// Anonymous is the actor for requests carrying no valid credential.
var Anonymous = Actor{}

// IsAdmin reports whether the actor holds admin rights, either through
// the admin role or the orthogonal superuser bit.
func (a Actor) IsAdmin() bool {
	return a.Authenticated && (a.Role == models.RoleAdmin || a.Superuser)
}

// IsModerator reports whether the actor holds the moderator role.
func (a Actor) IsModerator() bool {
	return a.Authenticated && a.Role == models.RoleModerator
}

// readOnly reports whether method is an idempotent retrieval operation.
// Read methods never count toward ownership or role checks.
func readOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AuthorOrReadOnly is the request-level check for review and comment
// endpoints: reads always pass, writes require authentication.
func AuthorOrReadOnly(a Actor, method string) bool {
	return readOnly(method) || a.Authenticated
}

// AuthorOrReadOnlyObject is the object-level check for an existing
// review or comment: reads always pass, writes require the actor to be
// the resource's author.
func AuthorOrReadOnlyObject(a Actor, method string, authorID uuid.UUID) bool {
	return readOnly(method) || (a.Authenticated && a.ID == authorID)
}

// AdminOrReadOnly gates system-owned resources (titles, categories,
// genres): reads always pass, writes require an administrator.
func AdminOrReadOnly(a Actor, method string) bool {
	return readOnly(method) || a.IsAdmin()
}

// RequireAdministrator gates the user-management surface. All methods,
// including reads, require an administrator.
func RequireAdministrator(a Actor) bool {
	return a.IsAdmin()
}

// RequireModerator requires the moderator role for all methods.
func RequireModerator(a Actor) bool {
	return a.IsModerator()
}

// CanMutateContribution is the effective write permission on an existing
// review or comment: the author may mutate their own, and moderators and
// administrators may mutate anyone's. Reads always pass.
func CanMutateContribution(a Actor, method string, authorID uuid.UUID) bool {
	return AuthorOrReadOnlyObject(a, method, authorID) ||
		RequireModerator(a) ||
		RequireAdministrator(a)
}
