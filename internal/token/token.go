// Package token provides Valkey-backed bearer tokens. A token is an
// opaque credential issued on successful code redemption; it is stored
// server-side as JSON with automatic TTL expiry, so revocation is a key
// delete and verification is a lookup.
package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reviewhub/internal/models"
)

const (
	// DefaultTTL is how long a token lives in Valkey before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces token keys in Valkey to avoid collisions.
	keyPrefix = "token:"

	// idLength is the byte length of the random token (32 bytes = 64 hex chars).
	idLength = 32
)

// Identity is the payload stored per token: just enough to locate the
// user. Role and active status are re-read from the database on every
// request so revocations and role changes apply immediately.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issued_at"`
}

// Store manages token lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a token store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
	}
}

// Issue generates a new bearer token bound to the user's identity and
// stores it with the configured TTL. Returns the token string.
func (s *Store) Issue(ctx context.Context, u *models.User) (string, error) {
	raw, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("token issue: %w", err)
	}

	payload, err := json.Marshal(Identity{
		UserID:   u.ID,
		Username: u.Username,
		IssuedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("token marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+raw, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("token store: %w", err)
	}

	return raw, nil
}

// Verify resolves a bearer token to its identity. Returns nil if the
// token is unknown or expired (not an error).
func (s *Store) Verify(ctx context.Context, raw string) (*Identity, error) {
	if raw == "" {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+raw).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("token get: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(payload, &id); err != nil {
		return nil, fmt.Errorf("token unmarshal: %w", err)
	}

	return &id, nil
}

// Revoke deletes a token. Revoking an unknown token is a no-op.
func (s *Store) Revoke(ctx context.Context, raw string) error {
	if err := s.client.Del(ctx, keyPrefix+raw).Err(); err != nil {
		return fmt.Errorf("token revoke: %w", err)
	}
	return nil
}

// generateToken creates a cryptographically random token string.
func generateToken() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
