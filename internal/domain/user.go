package domain

import "time"

// Role is stored with the user but carries no permissions of its own.
type Role string

const (
	RoleRequester Role = "requester"
	RoleDeveloper Role = "developer"
)

// User is keyed by an opaque client-side hash; it is the only authentication anchor.
type User struct {
	ID           int64
	UserHash     string
	PasswordHash string
	Role         Role
	IsAdmin      bool
	CreatedAt    time.Time
}
