// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable;
// Valkey is replaced by an in-process instance.
package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"reviewhub/internal/auth"
	"reviewhub/internal/database"
	"reviewhub/internal/middleware"
	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/store"
	"reviewhub/internal/token"
)

// mockSender implements mailer.Sender for handler tests.
type mockSender struct {
	body string
	err  error
}

func (m *mockSender) Send(_ context.Context, _, _, body string) error {
	if m.err != nil {
		return m.err
	}
	m.body = body
	return nil
}

// lastCode extracts the confirmation code from the captured mail body.
func (m *mockSender) lastCode(t *testing.T) string {
	t.Helper()
	const marker = "Your confirmation code is "
	i := strings.Index(m.body, marker)
	if i < 0 {
		t.Fatalf("no confirmation code in mail body: %q", m.body)
	}
	return strings.TrimSpace(m.body[i+len(marker):])
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "reviewhub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "reviewhub")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Mail       *mockSender
	Tokens     *token.Store
	Users      *store.UserStore
	Categories *store.CategoryStore
	Genres     *store.GenreStore
	Titles     *store.TitleStore
	Reviews    *store.ReviewStore
	Comments   *store.CommentStore

	Auth        *Auth
	UserHandler *Users
	CatHandler  *Categories
	TitleH      *Titles
	ReviewH     *Reviews
	CommentH    *Comments
}

// newTestEnv creates a complete test environment with all handler
// dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := &testEnv{
		DB:         db,
		Mail:       &mockSender{},
		Tokens:     token.NewStore(client),
		Users:      store.NewUserStore(db),
		Categories: store.NewCategoryStore(db),
		Genres:     store.NewGenreStore(db),
		Titles:     store.NewTitleStore(db),
		Reviews:    store.NewReviewStore(db),
		Comments:   store.NewCommentStore(db),
	}

	svc := auth.NewService(env.Users, env.Mail, env.Tokens)
	env.Auth = NewAuth(svc)
	env.UserHandler = NewUsers(env.Users)
	env.CatHandler = NewCategories(env.Categories)
	env.TitleH = NewTitles(env.Titles)
	env.ReviewH = NewReviews(env.Reviews, env.Titles)
	env.CommentH = NewComments(env.Comments, env.Reviews, env.Titles)

	return env
}

// seedUser creates an active user with the given role and registers
// cleanup. The returned actor carries the user's identity.
func (env *testEnv) seedUser(t *testing.T, username string, role models.Role) (*models.User, permissions.Actor) {
	t.Helper()
	u, err := env.Users.Create(username, username+"@handler-test.local", role, "", "", "")
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE username = $1", username) })
	return u, permissions.Actor{
		ID:            u.ID,
		Role:          u.Role,
		Superuser:     u.Superuser,
		Authenticated: true,
	}
}

// seedTitle creates a bare title and registers cleanup.
func (env *testEnv) seedTitle(t *testing.T, name string) *models.Title {
	t.Helper()
	title, err := env.Titles.Create(name, 2020, nil, "", nil)
	if err != nil {
		t.Fatalf("seed title %q: %v", name, err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM titles WHERE name = $1", name) })
	return title
}

// request builds a request with the given actor and chi URL parameters
// already injected, as if the router and LoadActor had run.
func request(method, target string, body string, actor permissions.Actor, params ...string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}

	ctx := middleware.WithActor(r.Context(), actor)

	routeCtx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		routeCtx.URLParams.Add(params[i], params[i+1])
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	return r.WithContext(ctx)
}

var errSMTPDown = errors.New("smtp unavailable")
