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

// Genres groups the genre HTTP handlers. Same ownership rules as
// categories: read for anyone, write for administrators.
type Genres struct {
	genres *store.GenreStore
}

// NewGenres creates a new Genres handler group.
func NewGenres(genres *store.GenreStore) *Genres {
	return &Genres{genres: genres}
}

// List handles GET /api/v1/genres.
func (h *Genres) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.genres.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Genre{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Create handles POST /api/v1/genres.
func (h *Genres) Create(w http.ResponseWriter, r *http.Request) {
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

	g, err := h.genres.Create(req.Name, slugValue)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

// Delete handles DELETE /api/v1/genres/{slug}.
func (h *Genres) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.AdminOrReadOnly(actor, r.Method) {
		respondDenied(w, actor)
		return
	}

	deleted, err := h.genres.DeleteBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondError(w, errs.NotFound("genre"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
