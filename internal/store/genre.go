// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"reviewhub/internal/errs"
	"reviewhub/internal/models"
)

// GenreStore manages genres in the database.
type GenreStore struct {
	db *sql.DB
}

// NewGenreStore returns a new GenreStore.
func NewGenreStore(db *sql.DB) *GenreStore {
	return &GenreStore{db: db}
}

// List returns all genres ordered by name.
func (s *GenreStore) List() ([]models.Genre, error) {
	rows, err := s.db.Query(`
		SELECT id, name, slug, created_at FROM genres ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var items []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a genre by its slug. Returns nil if not found.
func (s *GenreStore) FindBySlug(slug string) (*models.Genre, error) {
	g := &models.Genre{}
	err := s.db.QueryRow(`
		SELECT id, name, slug, created_at FROM genres WHERE slug = $1
	`, slug).Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find genre by slug: %w", err)
	}
	return g, nil
}

// Create inserts a new genre. A duplicate slug yields a conflict error.
func (s *GenreStore) Create(name, slug string) (*models.Genre, error) {
	g := &models.Genre{}
	err := s.db.QueryRow(`
		INSERT INTO genres (name, slug) VALUES ($1, $2)
		RETURNING id, name, slug, created_at
	`, name, slug).Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if isUniqueViolation(err) {
		return nil, errs.Conflict("genre slug already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return g, nil
}

// DeleteBySlug removes a genre and its title associations. Returns false
// if no such genre existed.
func (s *GenreStore) DeleteBySlug(slug string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM genres WHERE slug = $1`, slug)
	if err != nil {
		return false, fmt.Errorf("delete genre: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
