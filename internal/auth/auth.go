// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements the signup and confirmation-code flow. Each
// account moves through a fixed lifecycle: created inactive on signup,
// activated exactly once when a valid code is redeemed. Codes are
// single-use random nonces, stored only as bcrypt hashes and delivered
// out-of-band by email.
package auth

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"reviewhub/internal/errs"
	"reviewhub/internal/mailer"
	"reviewhub/internal/models"
	"reviewhub/internal/store"
	"reviewhub/internal/token"
)

const (
	// MaxUsernameLen mirrors the identity store's username limit.
	MaxUsernameLen = 150

	// MaxEmailLen is the RFC 5321 address ceiling we accept.
	MaxEmailLen = 254

	// ReservedUsername is refused at signup; it collides with the
	// /users/me profile path segment.
	ReservedUsername = "me"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
)

// Service wires the identity store, the outbound mail channel and the
// token issuer into the two authentication operations.
type Service struct {
	users  *store.UserStore
	mail   mailer.Sender
	tokens *token.Store
}

// NewService creates an authentication service.
func NewService(users *store.UserStore, mail mailer.Sender, tokens *token.Store) *Service {
	return &Service{users: users, mail: mail, tokens: tokens}
}

// RequestSignup validates the requested identity, creates or reuses the
// user record, and dispatches a fresh confirmation code by email. A code
// is regenerated on every call, so re-signup by an unconfirmed user
// simply re-sends a new code. No token is returned here.
func (s *Service) RequestSignup(ctx context.Context, username, email string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}

	// The username and email lookups must resolve to the same identity:
	// either both absent (a brand-new signup) or both the same existing
	// user. Anything else is an attempt to pair an existing identity
	// with someone else's username or email.
	byName, err := s.users.FindByUsername(username)
	if err != nil {
		return err
	}
	byEmail, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}
	switch {
	case byName == nil && byEmail == nil:
		// New identity.
	case byName != nil && byEmail != nil && byName.ID == byEmail.ID:
		// Existing identity re-requesting a code.
	default:
		return errs.Conflict("username and email do not match an existing account")
	}

	code := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}

	// The dispatch runs inside the signup transaction: if the email
	// cannot be sent, the whole signup rolls back rather than leaving an
	// inactive account with no way to receive its code.
	_, _, err = s.users.Signup(username, email, string(hash), func(u *models.User) error {
		return s.mail.Send(ctx, u.Email,
			"Your reviewhub confirmation code",
			fmt.Sprintf("Hello %s,\n\nYour confirmation code is %s\n", u.Username, code),
		)
	})
	return err
}

// RedeemToken exchanges a valid (username, code) pair for a bearer
// token. On success the user is activated and the code cleared, so a
// second redemption of the same code fails the credential check.
func (s *Service) RedeemToken(ctx context.Context, username, code string) (string, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", errs.NotFound("user")
	}

	if u.ConfirmationCode == nil {
		return "", errs.Authentication("confirmation code is invalid")
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.ConfirmationCode), []byte(code)) != nil {
		return "", errs.Authentication("confirmation code is invalid")
	}

	if err := s.users.Activate(u.ID); err != nil {
		return "", err
	}

	tok, err := s.tokens.Issue(ctx, u)
	if err != nil {
		return "", err
	}
	return tok, nil
}

// ValidateUsername enforces the username charset, length, and the
// reserved literal.
func ValidateUsername(username string) error {
	if username == "" {
		return errs.Validation("username", "must not be empty")
	}
	if len(username) > MaxUsernameLen {
		return errs.Validation("username", "must be at most 150 characters")
	}
	if !usernamePattern.MatchString(username) {
		return errs.Validation("username", "may contain only letters, digits and @/./+/-/_")
	}
	if username == ReservedUsername {
		return errs.Validation("username", `"me" is reserved`)
	}
	return nil
}

// ValidateEmail enforces a syntactically plausible address within the
// accepted length. Deliverability is proven by the code round-trip, not
// by parsing.
func ValidateEmail(email string) error {
	if email == "" {
		return errs.Validation("email", "must not be empty")
	}
	if len(email) > MaxEmailLen {
		return errs.Validation("email", "must be at most 254 characters")
	}
	if !emailPattern.MatchString(email) {
		return errs.Validation("email", "is not a valid address")
	}
	return nil
}
