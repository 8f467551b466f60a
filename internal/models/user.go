// Package models holds the persisted and ephemeral data structures shared
// by the repositories and services.
package models

// Role determines which session operations a user may perform.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is one entry of the credential collection. The username is the
// case-sensitive identity key; PasswordHash is the hex SHA-256 digest
// produced by cryptox.HashPassword.
type User struct {
	UserName     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
}
