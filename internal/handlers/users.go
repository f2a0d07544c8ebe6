// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/auth"
	"reviewhub/internal/errs"
	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/store"
)

// Users groups the user-management and own-profile HTTP handlers.
type Users struct {
	users *store.UserStore
}

// NewUsers creates a new Users handler group.
func NewUsers(users *store.UserStore) *Users {
	return &Users{users: users}
}

// userPatch is the profile-update payload. Pointer fields distinguish
// "absent" from "set to empty".
type userPatch struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// List handles GET /api/v1/users. Administrator only.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.RequireAdministrator(actor) {
		respondDenied(w, actor)
		return
	}

	users, err := h.users.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// Create handles POST /api/v1/users. Administrator only; this is the
// one surface where a role may be assigned directly.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.RequireAdministrator(actor) {
		respondDenied(w, actor)
		return
	}

	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := auth.ValidateUsername(req.Username); err != nil {
		respondError(w, err)
		return
	}
	if err := auth.ValidateEmail(req.Email); err != nil {
		respondError(w, err)
		return
	}
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		respondError(w, errs.Validation("role", "must be one of user, moderator, admin"))
		return
	}

	u, err := h.users.Create(req.Username, req.Email, role, req.FirstName, req.LastName, req.Bio)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

// Get handles GET /api/v1/users/{username}. Administrator only.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.RequireAdministrator(actor) {
		respondDenied(w, actor)
		return
	}

	u, err := h.users.FindByUsername(chi.URLParam(r, "username"))
	if err != nil {
		respondError(w, err)
		return
	}
	if u == nil {
		respondError(w, errs.NotFound("user"))
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// Update handles PATCH /api/v1/users/{username}. Administrator only;
// role changes are permitted here.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.RequireAdministrator(actor) {
		respondDenied(w, actor)
		return
	}

	u, err := h.users.FindByUsername(chi.URLParam(r, "username"))
	if err != nil {
		respondError(w, err)
		return
	}
	if u == nil {
		respondError(w, errs.NotFound("user"))
		return
	}

	var patch userPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	if err := h.applyPatch(u, patch, true); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// Delete handles DELETE /api/v1/users/{username}. Administrator only.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.RequireAdministrator(actor) {
		respondDenied(w, actor)
		return
	}

	deleted, err := h.users.DeleteByUsername(chi.URLParam(r, "username"))
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondError(w, errs.NotFound("user"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/users/me for any authenticated user.
func (h *Users) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !actor.Authenticated {
		respondDenied(w, actor)
		return
	}

	u, err := h.users.FindByID(actor.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if u == nil {
		respondError(w, errs.NotFound("user"))
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// UpdateMe handles PATCH /api/v1/users/me. A role field in the payload
// is silently dropped unless the requester is an administrator: role
// changes belong to the admin-only user-management surface.
func (h *Users) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !actor.Authenticated {
		respondDenied(w, actor)
		return
	}

	u, err := h.users.FindByID(actor.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if u == nil {
		respondError(w, errs.NotFound("user"))
		return
	}

	var patch userPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	if err := h.applyPatch(u, patch, permissions.RequireAdministrator(actor)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// applyPatch applies the non-nil fields of patch to u and persists it.
// The role field is applied only when allowRole is set; otherwise it is
// ignored without error.
func (h *Users) applyPatch(u *models.User, patch userPatch, allowRole bool) error {
	if patch.Email != nil {
		if err := auth.ValidateEmail(*patch.Email); err != nil {
			return err
		}
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Role != nil && allowRole {
		role := models.Role(*patch.Role)
		if !role.Valid() {
			return errs.Validation("role", "must be one of user, moderator, admin")
		}
		u.Role = role
	}
	return h.users.Update(u)
}
