package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleSecretary = "secretary"
	RoleAgent     = "agent"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleSecretary || r == RoleAgent
}

// User models an account in the credential store.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Disabled     bool      `json:"-"` // reserved, not enforced yet
	CreatedAt    time.Time `json:"created_at"`
}
