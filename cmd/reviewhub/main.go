// Package main is the entry point for the reviewhub API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewhub/internal/auth"
	"reviewhub/internal/config"
	"reviewhub/internal/database"
	"reviewhub/internal/handlers"
	"reviewhub/internal/mailer"
	"reviewhub/internal/router"
	"reviewhub/internal/store"
	"reviewhub/internal/token"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible token store).
	valkeyClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.ValkeyHost, cfg.ValkeyPort),
		Password: cfg.ValkeyPassword,
		DB:       0,
	})
	defer valkeyClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := valkeyClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	cancelPing()
	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", cfg.ValkeyHost, cfg.ValkeyPort))

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	genreStore := store.NewGenreStore(db)
	titleStore := store.NewTitleStore(db)
	reviewStore := store.NewReviewStore(db)
	commentStore := store.NewCommentStore(db)

	// Initialize the token issuer backed by Valkey.
	tokenStore := token.NewStore(valkeyClient)

	// Initialize the SMTP sender for confirmation-code delivery.
	smtp, err := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	if err != nil {
		slog.Error("failed to initialize smtp sender", "error", err)
		os.Exit(1)
	}

	// Initialize the authentication service.
	authService := auth.NewService(userStore, smtp, tokenStore)

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Auth:       handlers.NewAuth(authService),
		Users:      handlers.NewUsers(userStore),
		Categories: handlers.NewCategories(categoryStore),
		Genres:     handlers.NewGenres(genreStore),
		Titles:     handlers.NewTitles(titleStore),
		Reviews:    handlers.NewReviews(reviewStore, titleStore),
		Comments:   handlers.NewComments(commentStore, reviewStore, titleStore),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(tokenStore, userStore, h)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate SMTP dispatch on the signup path.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
