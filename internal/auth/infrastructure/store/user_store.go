// Package store provides the in-process user and token registries backing
// the Authentication Service.
package store

import (
	"context"
	"sync"

	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
)

// MemoryUserStore is a mutex-guarded in-memory user table. Accounts are
// seeded at startup and mutated only through admin operations, so a single
// lock is plenty.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]domain.User)}
}

// FindByUsername looks up a user by exact, case-sensitive username.
func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (s *MemoryUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	s.users[user.Username] = *user
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; !exists {
		return domain.ErrUserNotFound
	}
	delete(s.users, username)
	return nil
}
