package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role determines write authority: agents own clients and transactions,
// clients only see transactions they have claimed.
type Role string

const (
	RoleAgent  Role = "agent"
	RoleClient Role = "client"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Session is a server-side session record keyed by an opaque id carried in
// the session cookie.
type Session struct {
	ID        string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}
