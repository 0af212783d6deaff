package domain

// Identity is the (username, role) pair a valid token resolves to.
//
// The role is authoritative only from the server-side registry entry. The
// token value carries a role suffix for readability, but verification never
// trusts it.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
