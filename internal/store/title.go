// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reviewhub/internal/errs"
	"reviewhub/internal/models"
)

// TitleStore manages titles and their genre associations.
type TitleStore struct {
	db *sql.DB
}

// NewTitleStore returns a new TitleStore.
func NewTitleStore(db *sql.DB) *TitleStore {
	return &TitleStore{db: db}
}

// TitleWrite carries the write-path representation of a title: category
// and genres are referenced by slug, matching the API payload. Nil
// pointer fields mean "leave unchanged" on update.
type TitleWrite struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string // nil = unchanged, empty = clear
}

// titleQuery selects titles with their category embedded and the rating
// computed as the mean review score. The rating is derived on every
// read and never stored.
const titleQuery = `
	SELECT t.id, t.name, t.year, t.description, t.created_at,
	       c.id, c.name, c.slug, c.created_at,
	       AVG(r.score)::float8 AS rating
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN reviews r ON r.title_id = t.id
`

// scanTitle scans one row of titleQuery.
func scanTitle(scanner interface{ Scan(...any) error }) (*models.Title, error) {
	var (
		t         models.Title
		catID     *uuid.UUID
		catName   *string
		catSlug   *string
		catCreate sql.NullTime
	)
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Year, &t.Description, &t.CreatedAt,
		&catID, &catName, &catSlug, &catCreate,
		&t.Rating,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		t.Category = &models.Category{
			ID:        *catID,
			Name:      *catName,
			Slug:      *catSlug,
			CreatedAt: catCreate.Time,
		}
	}
	return &t, nil
}

// List returns all titles with embedded category, genres and rating.
func (s *TitleStore) List() ([]models.Title, error) {
	rows, err := s.db.Query(titleQuery + `
		GROUP BY t.id, c.id
		ORDER BY t.year, t.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var items []models.Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachGenres(items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID retrieves a title with category, genres and rating. Returns
// nil if not found.
func (s *TitleStore) FindByID(id uuid.UUID) (*models.Title, error) {
	t, err := scanTitle(s.db.QueryRow(titleQuery+`
		WHERE t.id = $1
		GROUP BY t.id, c.id
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find title by id: %w", err)
	}

	items := []models.Title{*t}
	if err := s.attachGenres(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// attachGenres populates the Genres slice for every title in items with
// a single join query.
func (s *TitleStore) attachGenres(items []models.Title) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
		items[i].Genres = []models.Genre{}
	}

	rows, err := s.db.Query(`
		SELECT tg.title_id, g.id, g.name, g.slug, g.created_at
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name
	`, ids)
	if err != nil {
		return fmt.Errorf("load title genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleID uuid.UUID
			g       models.Genre
		)
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return fmt.Errorf("scan title genre: %w", err)
		}
		i := index[titleID]
		items[i].Genres = append(items[i].Genres, g)
	}
	return rows.Err()
}

// Create inserts a title, resolving category and genres by slug. An
// unknown slug is a validation error; a duplicate (name, category) pair
// is a conflict.
func (s *TitleStore) Create(name string, year int, description *string, categorySlug string, genreSlugs []string) (*models.Title, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create title begin: %w", err)
	}
	defer tx.Rollback()

	categoryID, err := resolveCategory(tx, categorySlug)
	if err != nil {
		return nil, err
	}
	genreIDs, err := resolveGenres(tx, genreSlugs)
	if err != nil {
		return nil, err
	}

	var id uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, name, year, description, categoryID).Scan(&id)
	if isUniqueViolation(err) {
		return nil, errs.Conflict("title already exists in this category")
	}
	if err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}

	if err := replaceGenres(tx, id, genreIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create title commit: %w", err)
	}
	return s.FindByID(id)
}

// Update applies the non-nil fields of w to the title. Returns nil if
// the title does not exist.
func (s *TitleStore) Update(id uuid.UUID, w TitleWrite) (*models.Title, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update title begin: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM titles WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("update title lookup: %w", err)
	}
	if !exists {
		return nil, nil
	}

	if w.Name != nil {
		if _, err := tx.Exec(`UPDATE titles SET name = $1 WHERE id = $2`, *w.Name, id); err != nil {
			if isUniqueViolation(err) {
				return nil, errs.Conflict("title already exists in this category")
			}
			return nil, fmt.Errorf("update title name: %w", err)
		}
	}
	if w.Year != nil {
		if _, err := tx.Exec(`UPDATE titles SET year = $1 WHERE id = $2`, *w.Year, id); err != nil {
			return nil, fmt.Errorf("update title year: %w", err)
		}
	}
	if w.Description != nil {
		if _, err := tx.Exec(`UPDATE titles SET description = $1 WHERE id = $2`, *w.Description, id); err != nil {
			return nil, fmt.Errorf("update title description: %w", err)
		}
	}
	if w.CategorySlug != nil {
		categoryID, err := resolveCategory(tx, *w.CategorySlug)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(`UPDATE titles SET category_id = $1 WHERE id = $2`, categoryID, id); err != nil {
			if isUniqueViolation(err) {
				return nil, errs.Conflict("title already exists in this category")
			}
			return nil, fmt.Errorf("update title category: %w", err)
		}
	}
	if w.GenreSlugs != nil {
		genreIDs, err := resolveGenres(tx, w.GenreSlugs)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(`DELETE FROM title_genres WHERE title_id = $1`, id); err != nil {
			return nil, fmt.Errorf("clear title genres: %w", err)
		}
		if err := replaceGenres(tx, id, genreIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update title commit: %w", err)
	}
	return s.FindByID(id)
}

// Delete removes a title; its reviews and their comments cascade away.
// Returns false if no such title existed.
func (s *TitleStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete title: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// resolveCategory maps a category slug to its ID inside tx. An empty
// slug maps to null; an unknown slug is a field-level validation error,
// matching the write payload's slug-reference semantics.
func resolveCategory(tx *sql.Tx, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}
	var id uuid.UUID
	err := tx.QueryRow(`SELECT id FROM categories WHERE slug = $1`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, errs.Validation("category", "unknown category slug "+slug)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	return &id, nil
}

// resolveGenres maps genre slugs to IDs inside tx.
func resolveGenres(tx *sql.Tx, slugs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		var id uuid.UUID
		err := tx.QueryRow(`SELECT id FROM genres WHERE slug = $1`, slug).Scan(&id)
		if err == sql.ErrNoRows {
			return nil, errs.Validation("genre", "unknown genre slug "+slug)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve genre: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// replaceGenres inserts the title-genre associations inside tx.
func replaceGenres(tx *sql.Tx, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	for _, gid := range genreIDs {
		if _, err := tx.Exec(`
			INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, titleID, gid); err != nil {
			return fmt.Errorf("attach genre: %w", err)
		}
	}
	return nil
}
