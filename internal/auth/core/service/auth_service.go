package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
	"github.com/frauddetect/fraud-detection/internal/auth/core/ports"
)

// Seed describes an account created at process start.
type Seed struct {
	Username string
	Password string
	Role     string
}

// DefaultUsers are created on startup so the system is usable out of the box.
var DefaultUsers = []Seed{
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
	{Username: "secretary", Password: "secretary123", Role: domain.RoleSecretary},
	{Username: "agent", Password: "agent123", Role: domain.RoleAgent},
}

// AuthService implements credential verification and user management on top
// of a UserRepository.
type AuthService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// Seed creates the given accounts, skipping any that already exist.
func (s *AuthService) Seed(ctx context.Context, seeds []Seed) error {
	for _, seed := range seeds {
		_, err := s.CreateUser(ctx, seed.Username, seed.Password, seed.Role)
		if err != nil && !errors.Is(err, domain.ErrUserExists) {
			return err
		}
	}
	return nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both fail closed with ErrInvalidCredentials; neither is a
// fault.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", role).Msg("user created")
	return user, nil
}

// DeleteUser removes an account. ErrUserNotFound when it does not exist.
func (s *AuthService) DeleteUser(ctx context.Context, username string) error {
	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("user deleted")
	return nil
}
