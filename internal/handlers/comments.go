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

// Comments groups the comment HTTP handlers, nested under a review.
// Permission rules mirror reviews: read for anyone, create for any
// authenticated user, mutation for the author, moderators and admins.
type Comments struct {
	comments *store.CommentStore
	reviews  *store.ReviewStore
	titles   *store.TitleStore
}

// NewComments creates a new Comments handler group.
func NewComments(comments *store.CommentStore, reviews *store.ReviewStore, titles *store.TitleStore) *Comments {
	return &Comments{comments: comments, reviews: reviews, titles: titles}
}

// loadReview resolves the nested {titleID}/{reviewID} path to an
// existing review of an existing title.
func (h *Comments) loadReview(r *http.Request) (*models.Review, error) {
	tid, err := titleID(r)
	if err != nil {
		return nil, err
	}
	t, err := h.titles.FindByID(tid)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errs.NotFound("title")
	}

	rid, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		return nil, errs.Validation("review_id", "must be a valid UUID")
	}
	rev, err := h.reviews.FindByID(rid)
	if err != nil {
		return nil, err
	}
	if rev == nil || rev.TitleID != t.ID {
		return nil, errs.NotFound("review")
	}
	return rev, nil
}

// loadComment resolves {commentID} to a comment belonging to the review.
func (h *Comments) loadComment(r *http.Request, review *models.Review) (*models.Comment, error) {
	id, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		return nil, errs.Validation("comment_id", "must be a valid UUID")
	}
	c, err := h.comments.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.ReviewID != review.ID {
		return nil, errs.NotFound("comment")
	}
	return c, nil
}

// List handles GET .../reviews/{reviewID}/comments.
func (h *Comments) List(w http.ResponseWriter, r *http.Request) {
	rev, err := h.loadReview(r)
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.comments.ListByReview(rev.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Comment{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Get handles GET .../comments/{commentID}.
func (h *Comments) Get(w http.ResponseWriter, r *http.Request) {
	rev, err := h.loadReview(r)
	if err != nil {
		respondError(w, err)
		return
	}
	c, err := h.loadComment(r, rev)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// Create handles POST .../reviews/{reviewID}/comments.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.AuthorOrReadOnly(actor, r.Method) {
		respondDenied(w, actor)
		return
	}

	rev, err := h.loadReview(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateText(req.Text); err != nil {
		respondError(w, err)
		return
	}

	c, err := h.comments.Create(rev.ID, actor.ID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// Update handles PATCH .../comments/{commentID}.
func (h *Comments) Update(w http.ResponseWriter, r *http.Request) {
	rev, err := h.loadReview(r)
	if err != nil {
		respondError(w, err)
		return
	}
	c, err := h.loadComment(r, rev)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.CanMutateContribution(actor, r.Method, c.AuthorID) {
		respondDenied(w, actor)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateText(req.Text); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.comments.Update(c.ID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE .../comments/{commentID}.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	rev, err := h.loadReview(r)
	if err != nil {
		respondError(w, err)
		return
	}
	c, err := h.loadComment(r, rev)
	if err != nil {
		respondError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !permissions.CanMutateContribution(actor, r.Method, c.AuthorID) {
		respondDenied(w, actor)
		return
	}

	if _, err := h.comments.Delete(c.ID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
