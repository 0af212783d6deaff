package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
)

const tokenKeyPrefix = "authtoken:"

// TokenStore keeps the token registry in Redis. Expiry is delegated to the
// server-side TTL, so lazy eviction and the periodic sweep have nothing to
// do here.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

type tokenPayload struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s *TokenStore) Save(ctx context.Context, value string, id domain.Identity, ttl time.Duration) error {
	data, err := json.Marshal(tokenPayload{Username: id.Username, Role: id.Role})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := s.client.Set(ctx, tokenKeyPrefix+value, data, ttl).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *TokenStore) Lookup(ctx context.Context, value string) (*domain.Identity, error) {
	data, err := s.client.Get(ctx, tokenKeyPrefix+value).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}

	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	return &domain.Identity{Username: payload.Username, Role: payload.Role}, nil
}

func (s *TokenStore) Delete(ctx context.Context, value string) error {
	if err := s.client.Del(ctx, tokenKeyPrefix+value).Err(); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Ping reports backend connectivity for the readiness probe.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
