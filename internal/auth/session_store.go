package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound indicates no session is persisted for the user.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionInvalid indicates the presented refresh token verified
	// structurally but no longer matches the persisted session, i.e. it was
	// rotated away or revoked.
	ErrSessionInvalid = errors.New("session invalid")
	// ErrTokenExpired indicates the token's embedded expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid indicates the token is malformed or its signature does
	// not verify.
	ErrTokenInvalid = errors.New("token invalid")
)

// Session is the persisted refresh-token state for one user. At most one
// session row exists per user; saving a new one supersedes the old token.
type Session struct {
	UserID       string
	RefreshToken string
	ExpiresAt    time.Time
}

// SessionStore persists the current refresh token per user so rotation and
// revocation survive process restarts.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	FindByUser(ctx context.Context, userID string) (Session, error)
	DeleteByUser(ctx context.Context, userID string) error
}
