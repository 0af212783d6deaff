package ports

import (
	"context"

	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
)

// UserRepository defines persistence for credential store accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, username string) error
}
