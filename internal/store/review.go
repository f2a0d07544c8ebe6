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

// ReviewStore manages reviews in the database.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore returns a new ReviewStore.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

const reviewColumns = `r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.created_at`

// scanReview scans a row of reviewColumns into a Review struct.
func scanReview(scanner interface{ Scan(...any) error }) (*models.Review, error) {
	var r models.Review
	err := scanner.Scan(
		&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListByTitle returns a title's reviews in publication order.
func (s *ReviewStore) ListByTitle(titleID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.created_at ASC
	`, titleID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var items []models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// FindByID retrieves a review by its UUID. Returns nil if not found.
func (s *ReviewStore) FindByID(id uuid.UUID) (*models.Review, error) {
	r, err := scanReview(s.db.QueryRow(`
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	return r, nil
}

// ExistsForTitleAndAuthor reports whether the author already reviewed
// the title. This is the fast, friendly pre-check; the unique constraint
// on (title_id, author_id) remains the authoritative guard.
func (s *ReviewStore) ExistsForTitleAndAuthor(titleID, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM reviews WHERE title_id = $1 AND author_id = $2)
	`, titleID, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("review exists check: %w", err)
	}
	return exists, nil
}

// Create inserts a review. A lost check-then-insert race surfaces the
// constraint violation as the same conflict error the pre-check gives.
func (s *ReviewStore) Create(titleID, authorID uuid.UUID, text string, score int) (*models.Review, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO reviews (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, titleID, authorID, text, score).Scan(&id)
	if isUniqueViolation(err) {
		return nil, errs.Conflict("you have already reviewed this title")
	}
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return s.FindByID(id)
}

// Update changes the review's text and/or score. The (title, author)
// identity cannot change through update, so the duplicate pre-check does
// not apply here. Nil fields are left unchanged.
func (s *ReviewStore) Update(id uuid.UUID, text *string, score *int) (*models.Review, error) {
	_, err := s.db.Exec(`
		UPDATE reviews
		SET text = COALESCE($1, text), score = COALESCE($2, score)
		WHERE id = $3
	`, text, score, id)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return s.FindByID(id)
}

// Delete removes a review; its comments cascade away. Returns false if
// no such review existed.
func (s *ReviewStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
