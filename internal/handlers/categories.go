// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reviewhub/internal/errs"
	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/store"
)

// Categories groups the category HTTP handlers. Categories are
// system-owned: anyone may read, only administrators may write.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List handles GET /api/v1/categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Create handles POST /api/v1/categories.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.AdminOrReadOnly(actor, r.Method) {
		respondDenied(w, actor)
		return
	}

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	slugValue, err := validateTaxonomy(req.Name, req.Slug)
	if err != nil {
		respondError(w, err)
		return
	}

	c, err := h.categories.Create(req.Name, slugValue)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// Delete handles DELETE /api/v1/categories/{slug}. Titles referencing
// the category survive with a null category.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.AdminOrReadOnly(actor, r.Method) {
		respondDenied(w, actor)
		return
	}

	deleted, err := h.categories.DeleteBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondError(w, errs.NotFound("category"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
