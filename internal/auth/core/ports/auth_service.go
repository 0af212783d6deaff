package ports

import (
	"context"

	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
)

// AuthService covers credential verification and user management.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	CreateUser(ctx context.Context, username, password, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, username string) error
}

// TokenService mints and verifies opaque bearer tokens.
type TokenService interface {
	Issue(ctx context.Context, username, role string) (string, error)
	Verify(ctx context.Context, value string) (*domain.Identity, error)
}
