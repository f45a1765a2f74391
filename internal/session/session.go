// Package session holds the in-memory registry of authenticated sessions.
// Sessions are intentionally ephemeral and per-process: the store starts empty
// on every restart and is never persisted.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Principal identifies who a session belongs to. Authorization dispatches on
// Role; UserID is zero for the admin.
type Principal struct {
	Role   Role
	UserID int
}

func AdminPrincipal() Principal {
	return Principal{Role: RoleAdmin}
}

func UserPrincipal(userID int) Principal {
	return Principal{Role: RoleUser, UserID: userID}
}

type Session struct {
	Token        string
	Principal    Principal
	LastActiveAt time.Time
}

// NewToken returns an opaque session token with 256 bits of entropy.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
