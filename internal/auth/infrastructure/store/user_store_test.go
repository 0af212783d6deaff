package store

import (
	"context"
	"errors"
	"testing"

	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
)

func TestMemoryUserStore_CRUD(t *testing.T) {
	s := NewMemoryUserStore()

	user := &domain.User{Username: "alice", PasswordHash: "hash", Role: domain.RoleAgent}
	if err := s.Create(context.Background(), user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.Create(context.Background(), user); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	got, err := s.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Role != domain.RoleAgent {
		t.Fatalf("unexpected role: %s", got.Role)
	}

	// The store hands out copies; mutating one must not touch stored state.
	got.Role = domain.RoleAdmin
	again, err := s.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if again.Role != domain.RoleAgent {
		t.Fatalf("stored user was mutated through a returned copy")
	}

	if _, err := s.FindByUsername(context.Background(), "Alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected case-sensitive lookup to miss, got %v", err)
	}

	if err := s.Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(context.Background(), "alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
