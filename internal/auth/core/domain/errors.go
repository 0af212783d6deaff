package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers absent, malformed and expired tokens. Callers
	// cannot distinguish the three.
	ErrInvalidToken = errors.New("invalid token")

	ErrInvalidRole  = errors.New("invalid role")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("access forbidden")
)
