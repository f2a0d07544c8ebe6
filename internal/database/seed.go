package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a superuser
// account (already active, no confirmation code pending) and a starter
// set of categories and genres.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO users (username, email, role, is_superuser, is_active)
		VALUES ($1, $2, $3, TRUE, TRUE)
	`, "admin", "admin@reviewhub.local", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	categories := map[string]string{
		"books":  "Books",
		"movies": "Movies",
		"music":  "Music",
	}
	for slug, name := range categories {
		if _, err := db.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, name, slug); err != nil {
			return fmt.Errorf("seed insert category %s: %w", slug, err)
		}
	}

	genres := map[string]string{
		"drama":     "Drama",
		"comedy":    "Comedy",
		"sci-fi":    "Science Fiction",
		"fantasy":   "Fantasy",
		"rock":      "Rock",
		"classical": "Classical",
	}
	for slug, name := range genres {
		if _, err := db.Exec(`
			INSERT INTO genres (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, name, slug); err != nil {
			return fmt.Errorf("seed insert genre %s: %w", slug, err)
		}
	}

	slog.Info("database seeded with default admin and starter taxonomy",
		"admin", "admin@reviewhub.local",
	)

	return nil
}
