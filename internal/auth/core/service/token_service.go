package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
	"github.com/frauddetect/fraud-detection/internal/auth/core/ports"
)

// tokenEntropyBytes is the random portion of every token value. 24 bytes
// keeps collisions out of reach even at millions of live tokens.
const tokenEntropyBytes = 24

// TokenService mints opaque bearer tokens and verifies them against the
// server-side registry.
type TokenService struct {
	store ports.TokenStore
	ttl   time.Duration
	log   zerolog.Logger
}

func NewTokenService(store ports.TokenStore, ttl time.Duration, log zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenService{store: store, ttl: ttl, log: log}
}

// Issue generates a fresh token value bound to (username, role) and records
// it with the configured TTL. The role suffix on the value is informational
// only; Verify resolves the role from the registry entry.
func (s *TokenService) Issue(ctx context.Context, username, role string) (string, error) {
	b := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	value := base64.RawURLEncoding.EncodeToString(b) + "|" + role

	id := domain.Identity{Username: username, Role: role}
	if err := s.store.Save(ctx, value, id, s.ttl); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("username", username).Str("role", role).Msg("token issued")
	return value, nil
}

// Verify resolves a presented token value to the identity it was issued to.
// The value is normalised first so double-prefixed credentials from naive
// clients ("Bearer Bearer abc") verify the same as clean ones. Absent,
// malformed and expired tokens are indistinguishable: all ErrInvalidToken.
func (s *TokenService) Verify(ctx context.Context, value string) (*domain.Identity, error) {
	value = NormalizeToken(value)
	if value == "" {
		return nil, domain.ErrInvalidToken
	}

	id, err := s.store.Lookup(ctx, value)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}
	return id, nil
}

// NormalizeToken strips any leading authentication-scheme prefixes and
// surrounding whitespace from a presented credential.
func NormalizeToken(value string) string {
	value = strings.TrimSpace(value)
	for {
		rest := strings.TrimPrefix(value, "Bearer ")
		if rest == value {
			return value
		}
		value = strings.TrimSpace(rest)
	}
}
