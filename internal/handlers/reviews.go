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

// Reviews groups the review HTTP handlers, nested under a title. Anyone
// may read; creating requires authentication plus the one-review-per-
// (title, author) invariant; mutating an existing review requires the
// author, a moderator, or an administrator.
type Reviews struct {
	reviews *store.ReviewStore
	titles  *store.TitleStore
}

// NewReviews creates a new Reviews handler group.
func NewReviews(reviews *store.ReviewStore, titles *store.TitleStore) *Reviews {
	return &Reviews{reviews: reviews, titles: titles}
}

// loadTitle resolves the {titleID} parameter to an existing title.
func (h *Reviews) loadTitle(r *http.Request) (*models.Title, error) {
	id, err := titleID(r)
	if err != nil {
		return nil, err
	}
	t, err := h.titles.FindByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errs.NotFound("title")
	}
	return t, nil
}

// loadReview resolves {reviewID} to a review belonging to the given title.
func (h *Reviews) loadReview(r *http.Request, title *models.Title) (*models.Review, error) {
	id, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		return nil, errs.Validation("review_id", "must be a valid UUID")
	}
	rev, err := h.reviews.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rev == nil || rev.TitleID != title.ID {
		return nil, errs.NotFound("review")
	}
	return rev, nil
}

// List handles GET /api/v1/titles/{titleID}/reviews.
func (h *Reviews) List(w http.ResponseWriter, r *http.Request) {
	title, err := h.loadTitle(r)
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.reviews.ListByTitle(title.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Review{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Get handles GET /api/v1/titles/{titleID}/reviews/{reviewID}.
func (h *Reviews) Get(w http.ResponseWriter, r *http.Request) {
	title, err := h.loadTitle(r)
	if err != nil {
		respondError(w, err)
		return
	}
	rev, err := h.loadReview(r, title)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rev)
}

// Create handles POST /api/v1/titles/{titleID}/reviews. The duplicate
// check runs here as a friendly pre-check; the unique constraint on
// (title, author) catches any race that slips past it.
func (h *Reviews) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.AuthorOrReadOnly(actor, r.Method) {
		respondDenied(w, actor)
		return
	}

	title, err := h.loadTitle(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Text  string `json:"text"`
		Score int    `json:"score"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateText(req.Text); err != nil {
		respondError(w, err)
		return
	}
	if err := validateScore(req.Score); err != nil {
		respondError(w, err)
		return
	}

	exists, err := h.reviews.ExistsForTitleAndAuthor(title.ID, actor.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if exists {
		respondError(w, errs.Conflict("you have already reviewed this title"))
		return
	}

	rev, err := h.reviews.Create(title.ID, actor.ID, req.Text, req.Score)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rev)
}

// Update handles PATCH /api/v1/titles/{titleID}/reviews/{reviewID}.
// The (title, author) identity cannot change through update, so the
// duplicate pre-check does not apply here.
func (h *Reviews) Update(w http.ResponseWriter, r *http.Request) {
	title, err := h.loadTitle(r)
	if err != nil {
		respondError(w, err)
		return
	}
	rev, err := h.loadReview(r, title)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.CanMutateContribution(actor, r.Method, rev.AuthorID) {
		respondDenied(w, actor)
		return
	}

	var req struct {
		Text  *string `json:"text"`
		Score *int    `json:"score"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Text != nil {
		if err := validateText(*req.Text); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Score != nil {
		if err := validateScore(*req.Score); err != nil {
			respondError(w, err)
			return
		}
	}

	updated, err := h.reviews.Update(rev.ID, req.Text, req.Score)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/titles/{titleID}/reviews/{reviewID}.
// The review's comments cascade away.
func (h *Reviews) Delete(w http.ResponseWriter, r *http.Request) {
	title, err := h.loadTitle(r)
	if err != nil {
		respondError(w, err)
		return
	}
	rev, err := h.loadReview(r, title)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.CanMutateContribution(actor, r.Method, rev.AuthorID) {
		respondDenied(w, actor)
		return
	}

	if _, err := h.reviews.Delete(rev.ID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
