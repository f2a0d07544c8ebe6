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

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, username, email, first_name, last_name, bio, role, is_superuser, is_active, confirmation_code, created_at, updated_at`

// scanUser scans a row into a User struct.
func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Bio,
		&u.Role, &u.Superuser, &u.IsActive, &u.ConfirmationCode,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// FindByEmail retrieves a user by email address. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// List returns all users ordered by username.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user through the admin-managed surface. Accounts
// created this way are active immediately and have no pending code.
func (s *UserStore) Create(username, email string, role models.Role, firstName, lastName, bio string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`
		INSERT INTO users (username, email, role, first_name, last_name, bio, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING `+userColumns,
		username, email, role, firstName, lastName, bio,
	))
	if isUniqueViolation(err) {
		return nil, errs.Conflict("username or email already in use")
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Signup performs the signup write path in a single transaction:
// get-or-create the user keyed by (email, username), mark it inactive
// when newly created, store the fresh confirmation-code hash, and invoke
// send before committing. A failed dispatch aborts the whole signup so
// no inactive account is left without a deliverable code.
func (s *UserStore) Signup(username, email, codeHash string, send func(u *models.User) error) (*models.User, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("signup begin: %w", err)
	}
	defer tx.Rollback()

	u, err := scanUser(tx.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username = $1 AND email = $2`,
		username, email,
	))
	created := false
	if err == sql.ErrNoRows {
		u, err = scanUser(tx.QueryRow(`
			INSERT INTO users (username, email, is_active)
			VALUES ($1, $2, FALSE)
			RETURNING `+userColumns,
			username, email,
		))
		created = true
	}
	if isUniqueViolation(err) {
		// Lost a race with a concurrent signup for the same identity.
		return nil, false, errs.Conflict("username or email already in use")
	}
	if err != nil {
		return nil, false, fmt.Errorf("signup get or create: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE users SET confirmation_code = $1, updated_at = NOW() WHERE id = $2
	`, codeHash, u.ID); err != nil {
		return nil, false, fmt.Errorf("signup set code: %w", err)
	}
	u.ConfirmationCode = &codeHash

	if err := send(u); err != nil {
		return nil, false, fmt.Errorf("signup dispatch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("signup commit: %w", err)
	}
	return u, created, nil
}

// Activate marks the user active and clears the stored confirmation code
// so it cannot be redeemed again.
func (s *UserStore) Activate(userID uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE users SET is_active = TRUE, confirmation_code = NULL, updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	return nil
}

// Update persists the mutable profile fields plus role of u.
func (s *UserStore) Update(u *models.User) error {
	_, err := s.db.Exec(`
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, bio = $4, role = $5, updated_at = NOW()
		WHERE id = $6
	`, u.Email, u.FirstName, u.LastName, u.Bio, u.Role, u.ID)
	if isUniqueViolation(err) {
		return errs.Conflict("email already in use")
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DeleteByUsername removes a user. Returns false if no such user existed.
func (s *UserStore) DeleteByUsername(username string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
