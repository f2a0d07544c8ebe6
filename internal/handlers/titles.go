// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reviewhub/internal/errs"
	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/store"
)

// Titles groups the title HTTP handlers. Reads embed category, genres
// and the derived rating; writes reference category and genres by slug
// and are restricted to administrators.
type Titles struct {
	titles *store.TitleStore
}

// NewTitles creates a new Titles handler group.
func NewTitles(titles *store.TitleStore) *Titles {
	return &Titles{titles: titles}
}

// titleID parses the {titleID} URL parameter.
func titleID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "titleID"))
	if err != nil {
		return uuid.Nil, errs.Validation("title_id", "must be a valid UUID")
	}
	return id, nil
}

// List handles GET /api/v1/titles.
func (h *Titles) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.titles.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Title{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Get handles GET /api/v1/titles/{titleID}.
func (h *Titles) Get(w http.ResponseWriter, r *http.Request) {
	id, err := titleID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	t, err := h.titles.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if t == nil {
		respondError(w, errs.NotFound("title"))
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// Create handles POST /api/v1/titles.
func (h *Titles) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.AdminOrReadOnly(actor, r.Method) {
		respondDenied(w, actor)
		return
	}

	var req struct {
		Name        string   `json:"name"`
		Year        int      `json:"year"`
		Description *string  `json:"description"`
		Category    string   `json:"category"`
		Genre       []string `json:"genre"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := validateTitleName(req.Name); err != nil {
		respondError(w, err)
		return
	}
	if err := validateYear(req.Year); err != nil {
		respondError(w, err)
		return
	}

	t, err := h.titles.Create(req.Name, req.Year, req.Description, req.Category, req.Genre)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// Update handles PATCH /api/v1/titles/{titleID}. Absent fields are left
// unchanged.
func (h *Titles) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.AdminOrReadOnly(actor, r.Method) {
		respondDenied(w, actor)
		return
	}

	id, err := titleID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Year        *int     `json:"year"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Genre       []string `json:"genre"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.Name != nil {
		if err := validateTitleName(*req.Name); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			respondError(w, err)
			return
		}
	}

	t, err := h.titles.Update(id, store.TitleWrite{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	if t == nil {
		respondError(w, errs.NotFound("title"))
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /api/v1/titles/{titleID}. The title's reviews
// and their comments cascade away.
func (h *Titles) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.AdminOrReadOnly(actor, r.Method) {
		respondDenied(w, actor)
		return
	}

	id, err := titleID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	deleted, err := h.titles.Delete(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !deleted {
		respondError(w, errs.NotFound("title"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
