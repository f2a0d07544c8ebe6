// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
)

func TestTitleWritesAreAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	_, user := env.seedUser(t, "test-th-plain", models.RoleUser)
	_, moderator := env.seedUser(t, "test-th-mod", models.RoleModerator)

	body := `{"name":"Test TH Denied","year":2001}`

	rec := httptest.NewRecorder()
	env.TitleH.Create(rec, request(http.MethodPost, "/api/v1/titles", body, permissions.Anonymous))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create status: got %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.TitleH.Create(rec, request(http.MethodPost, "/api/v1/titles", body, user))
	if rec.Code != http.StatusForbidden {
		t.Errorf("plain user create status: got %d, want 403", rec.Code)
	}

	// Moderators manage contributions, not the catalogue.
	rec = httptest.NewRecorder()
	env.TitleH.Create(rec, request(http.MethodPost, "/api/v1/titles", body, moderator))
	if rec.Code != http.StatusForbidden {
		t.Errorf("moderator create status: got %d, want 403", rec.Code)
	}
}

func TestTitleCreateWithCategoryAndGenres(t *testing.T) {
	env := newTestEnv(t)
	_, admin := env.seedUser(t, "test-th-admin", models.RoleAdmin)

	if _, err := env.Categories.Create("Test TH Films", "test-th-films"); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE slug = 'test-th-films'") })
	if _, err := env.Genres.Create("Test TH Drama", "test-th-drama"); err != nil {
		t.Fatalf("seed genre: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM genres WHERE slug = 'test-th-drama'") })

	name := "Test TH Created"
	t.Cleanup(func() { env.DB.Exec("DELETE FROM titles WHERE name = $1", name) })

	rec := httptest.NewRecorder()
	env.TitleH.Create(rec, request(http.MethodPost, "/api/v1/titles",
		`{"name":"`+name+`","year":1994,"category":"test-th-films","genre":["test-th-drama"]}`, admin))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var title models.Title
	if err := json.Unmarshal(rec.Body.Bytes(), &title); err != nil {
		t.Fatalf("decode title: %v", err)
	}
	if title.Category == nil || title.Category.Slug != "test-th-films" {
		t.Error("expected embedded category")
	}
	if len(title.Genres) != 1 || title.Genres[0].Slug != "test-th-drama" {
		t.Errorf("genres: %+v", title.Genres)
	}
	if title.Rating != nil {
		t.Error("a fresh title has no rating")
	}

	// Unknown slugs are validation errors.
	rec = httptest.NewRecorder()
	env.TitleH.Create(rec, request(http.MethodPost, "/api/v1/titles",
		`{"name":"Test TH Bad Slug","year":1994,"category":"test-th-missing"}`, admin))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category status: got %d, want 400", rec.Code)
	}
}

func TestTitleCreateFutureYear(t *testing.T) {
	env := newTestEnv(t)
	_, admin := env.seedUser(t, "test-th-year-admin", models.RoleAdmin)

	future := time.Now().UTC().Year() + 1
	rec := httptest.NewRecorder()
	env.TitleH.Create(rec, request(http.MethodPost, "/api/v1/titles",
		fmt.Sprintf(`{"name":"Test TH Future","year":%d}`, future), admin))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("future year status: got %d, want 400", rec.Code)
	}
}

func TestTitleGetAndDelete(t *testing.T) {
	env := newTestEnv(t)
	_, admin := env.seedUser(t, "test-th-del-admin", models.RoleAdmin)
	title := env.seedTitle(t, "Test TH Deletable")

	rec := httptest.NewRecorder()
	env.TitleH.Get(rec, request(http.MethodGet, "/", "", permissions.Anonymous, "titleID", title.ID.String()))
	if rec.Code != http.StatusOK {
		t.Errorf("anonymous get status: got %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.TitleH.Get(rec, request(http.MethodGet, "/", "", permissions.Anonymous, "titleID", "not-a-uuid"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.TitleH.Delete(rec, request(http.MethodDelete, "/", "", admin, "titleID", title.ID.String()))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status: got %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.TitleH.Get(rec, request(http.MethodGet, "/", "", permissions.Anonymous, "titleID", title.ID.String()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status: got %d, want 404", rec.Code)
	}
}
