package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/auth/api/metrics"
	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
)

type tokenEntry struct {
	identity  domain.Identity
	expiresAt time.Time
}

// MemoryTokenStore is the default in-process token registry. All access goes
// through a single mutex so a lookup that finds an expired entry can evict
// it in the same critical section, and a concurrent sweep never races a
// verification on the same value.
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]tokenEntry
	now     func() time.Time
	log     zerolog.Logger
}

func NewMemoryTokenStore(log zerolog.Logger) *MemoryTokenStore {
	return &MemoryTokenStore{
		entries: make(map[string]tokenEntry),
		now:     time.Now,
		log:     log,
	}
}

func (s *MemoryTokenStore) Save(_ context.Context, value string, id domain.Identity, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[value] = tokenEntry{identity: id, expiresAt: s.now().Add(ttl)}
	return nil
}

// Lookup resolves a token value, evicting it lazily when expired. An expired
// entry answers exactly like one that never existed.
func (s *MemoryTokenStore) Lookup(_ context.Context, value string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[value]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, value)
		return nil, domain.ErrInvalidToken
	}

	id := entry.identity
	return &id, nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, value)
	return nil
}

// Sweep evicts every expired entry and returns how many were removed.
// Evicting an entry that a concurrent Lookup already removed is a no-op.
func (s *MemoryTokenStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for value, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, value)
			evicted++
		}
	}
	return evicted
}

// RunSweeper sweeps expired tokens on a fixed interval until ctx is
// cancelled. Run it in its own goroutine for the lifetime of the service.
func (s *MemoryTokenStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Msg("token sweeper stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				metrics.TokensSweptTotal.Add(float64(n))
				s.log.Debug().Int("evicted", n).Msg("expired tokens swept")
			}
		}
	}
}

// Len reports the number of live entries. Used by tests and readiness info.
func (s *MemoryTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SetClock overrides the time source. Intended for use in tests only.
func (s *MemoryTokenStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
