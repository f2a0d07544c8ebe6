// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
)

func TestReviewCreateRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	title := env.seedTitle(t, "Test RH Anon Title")

	rec := httptest.NewRecorder()
	env.ReviewH.Create(rec, request(http.MethodPost, "/", `{"text":"nice","score":7}`,
		permissions.Anonymous, "titleID", title.ID.String()))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create status: got %d, want 401", rec.Code)
	}
}

func TestReviewListIsPublic(t *testing.T) {
	env := newTestEnv(t)
	title := env.seedTitle(t, "Test RH Public Title")

	rec := httptest.NewRecorder()
	env.ReviewH.List(rec, request(http.MethodGet, "/", "",
		permissions.Anonymous, "titleID", title.ID.String()))

	if rec.Code != http.StatusOK {
		t.Errorf("anonymous list status: got %d, want 200", rec.Code)
	}
	var items []models.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if items == nil {
		t.Error("empty list must encode as [], not null")
	}
}

func TestReviewCreateAndDuplicate(t *testing.T) {
	env := newTestEnv(t)
	title := env.seedTitle(t, "Test RH Dup Title")
	_, actor := env.seedUser(t, "test-rh-dup-author", models.RoleUser)

	rec := httptest.NewRecorder()
	env.ReviewH.Create(rec, request(http.MethodPost, "/", `{"text":"first","score":8}`,
		actor, "titleID", title.ID.String()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var rev models.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &rev); err != nil {
		t.Fatalf("decode review: %v", err)
	}
	if rev.Author != "test-rh-dup-author" {
		t.Errorf("author: got %q", rev.Author)
	}

	// A second review of the same title by the same author is a conflict.
	rec = httptest.NewRecorder()
	env.ReviewH.Create(rec, request(http.MethodPost, "/", `{"text":"second","score":2}`,
		actor, "titleID", title.ID.String()))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status: got %d, want 409", rec.Code)
	}
}

func TestReviewCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	title := env.seedTitle(t, "Test RH Valid Title")
	_, actor := env.seedUser(t, "test-rh-valid-author", models.RoleUser)

	tests := []struct {
		name string
		body string
	}{
		{"score too low", `{"text":"x","score":0}`},
		{"score too high", `{"text":"x","score":11}`},
		{"empty text", `{"text":"","score":5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.ReviewH.Create(rec, request(http.MethodPost, "/", tt.body,
				actor, "titleID", title.ID.String()))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}

	// Unknown title is 404 even for a valid payload.
	rec := httptest.NewRecorder()
	env.ReviewH.Create(rec, request(http.MethodPost, "/", `{"text":"x","score":5}`,
		actor, "titleID", uuid.NewString()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown title status: got %d, want 404", rec.Code)
	}
}

// TestReviewMutationMatrix covers who may change an existing review: the
// author and the moderator may, another plain user may not.
func TestReviewMutationMatrix(t *testing.T) {
	env := newTestEnv(t)
	title := env.seedTitle(t, "Test RH Matrix Title")
	_, author := env.seedUser(t, "test-rh-matrix-author", models.RoleUser)
	_, stranger := env.seedUser(t, "test-rh-matrix-stranger", models.RoleUser)
	_, moderator := env.seedUser(t, "test-rh-matrix-mod", models.RoleModerator)

	rec := httptest.NewRecorder()
	env.ReviewH.Create(rec, request(http.MethodPost, "/", `{"text":"mine","score":6}`,
		author, "titleID", title.ID.String()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d", rec.Code)
	}
	var rev models.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &rev); err != nil {
		t.Fatalf("decode review: %v", err)
	}

	params := []string{"titleID", title.ID.String(), "reviewID", rev.ID.String()}

	// A stranger cannot edit someone else's review.
	rec = httptest.NewRecorder()
	env.ReviewH.Update(rec, request(http.MethodPatch, "/", `{"score":1}`, stranger, params...))
	if rec.Code != http.StatusForbidden {
		t.Errorf("stranger patch status: got %d, want 403", rec.Code)
	}

	// The author edits their own.
	rec = httptest.NewRecorder()
	env.ReviewH.Update(rec, request(http.MethodPatch, "/", `{"score":9}`, author, params...))
	if rec.Code != http.StatusOK {
		t.Errorf("author patch status: got %d, want 200", rec.Code)
	}
	var updated models.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated review: %v", err)
	}
	if updated.Score != 9 {
		t.Errorf("score = %d, want 9", updated.Score)
	}
	if updated.Text != "mine" {
		t.Error("omitted text must be left unchanged")
	}

	// A moderator deletes someone else's review.
	rec = httptest.NewRecorder()
	env.ReviewH.Delete(rec, request(http.MethodDelete, "/", "", moderator, params...))
	if rec.Code != http.StatusNoContent {
		t.Errorf("moderator delete status: got %d, want 204", rec.Code)
	}
}

func TestCommentFlow(t *testing.T) {
	env := newTestEnv(t)
	title := env.seedTitle(t, "Test RH Comment Title")
	_, reviewer := env.seedUser(t, "test-rh-comment-reviewer", models.RoleUser)
	_, commenter := env.seedUser(t, "test-rh-commenter", models.RoleUser)

	rec := httptest.NewRecorder()
	env.ReviewH.Create(rec, request(http.MethodPost, "/", `{"text":"discuss","score":5}`,
		reviewer, "titleID", title.ID.String()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create review status: got %d", rec.Code)
	}
	var rev models.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &rev); err != nil {
		t.Fatalf("decode review: %v", err)
	}

	params := []string{"titleID", title.ID.String(), "reviewID", rev.ID.String()}

	// Anonymous cannot comment.
	rec = httptest.NewRecorder()
	env.CommentH.Create(rec, request(http.MethodPost, "/", `{"text":"hi"}`, permissions.Anonymous, params...))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous comment status: got %d, want 401", rec.Code)
	}

	// Any authenticated user can comment on any review.
	rec = httptest.NewRecorder()
	env.CommentH.Create(rec, request(http.MethodPost, "/", `{"text":"good point"}`, commenter, params...))
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var c models.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode comment: %v", err)
	}

	// The review's author cannot edit someone else's comment.
	cparams := append(params, "commentID", c.ID.String())
	rec = httptest.NewRecorder()
	env.CommentH.Update(rec, request(http.MethodPatch, "/", `{"text":"rewritten"}`, reviewer, cparams...))
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-author comment patch status: got %d, want 403", rec.Code)
	}

	// The comment's author can.
	rec = httptest.NewRecorder()
	env.CommentH.Update(rec, request(http.MethodPatch, "/", `{"text":"clarified"}`, commenter, cparams...))
	if rec.Code != http.StatusOK {
		t.Errorf("author comment patch status: got %d, want 200", rec.Code)
	}

	// A comment under a mismatched review is 404.
	rec = httptest.NewRecorder()
	env.CommentH.Get(rec, request(http.MethodGet, "/", "", permissions.Anonymous,
		"titleID", title.ID.String(), "reviewID", rev.ID.String(), "commentID", uuid.NewString()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown comment status: got %d, want 404", rec.Code)
	}
}
