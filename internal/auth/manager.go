package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/streamtube/backend/internal/models"
)

// Manager issues, refreshes, and revokes signed session tokens. Access tokens
// are verified purely by signature and expiry; refresh tokens must additionally
// match the value persisted for the user, so a superseded refresh token is
// rejected even while its signature still verifies.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	store SessionStore
	now   func() time.Time
}

// NewManager constructs a Manager signing tokens with the provided secret and TTLs.
func NewManager(secret string, accessTTL, refreshTTL time.Duration, store SessionStore) *Manager {
	if secret == "" {
		panic("auth: token secret must not be empty")
	}
	if store == nil {
		panic("auth: session store must not be nil")
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Issue creates a new pair of access and refresh tokens for the user and
// persists the refresh token, overwriting any prior value.
func (m *Manager) Issue(ctx context.Context, userID string) (models.SessionTokens, error) {
	if userID == "" {
		return models.SessionTokens{}, errors.New("user id must be provided")
	}

	now := m.now()
	accessExpiry := now.Add(m.accessTTL)
	refreshExpiry := now.Add(m.refreshTTL)

	accessToken, err := m.sign(userID, tokenTypeAccess, now, accessExpiry)
	if err != nil {
		return models.SessionTokens{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := m.sign(userID, tokenTypeRefresh, now, refreshExpiry)
	if err != nil {
		return models.SessionTokens{}, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := m.store.Save(ctx, Session{
		UserID:       userID,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshExpiry,
	}); err != nil {
		return models.SessionTokens{}, fmt.Errorf("persist session: %w", err)
	}

	return models.SessionTokens{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// Refresh exchanges a refresh token for a new session token pair. The token
// must verify structurally and equal the persisted value for its user.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error) {
	if refreshToken == "" {
		return models.SessionTokens{}, ErrTokenInvalid
	}

	userID, err := m.verify(refreshToken, tokenTypeRefresh)
	if err != nil {
		return models.SessionTokens{}, err
	}

	session, err := m.store.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return models.SessionTokens{}, ErrSessionInvalid
		}
		return models.SessionTokens{}, fmt.Errorf("load session: %w", err)
	}

	if session.RefreshToken != refreshToken {
		return models.SessionTokens{}, ErrSessionInvalid
	}

	return m.Issue(ctx, userID)
}

// Revoke clears the persisted refresh token for the user, making previously
// issued refresh tokens permanently unusable. Revoking an absent session is a no-op.
func (m *Manager) Revoke(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if err := m.store.DeleteByUser(ctx, userID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// VerifyAccess checks an access token's signature, expiry, and token type and
// returns the user it identifies. It never consults the session store, so
// refresh tokens must not pass here: they are only honored through Refresh,
// where the persisted session is checked.
func (m *Manager) VerifyAccess(token string) (string, error) {
	return m.verify(token, tokenTypeAccess)
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// sessionClaims binds a token to its role. Access and refresh tokens share a
// secret, so without the typ claim a long-lived refresh token would keep
// authenticating requests after Revoke cleared the session.
type sessionClaims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func (m *Manager) sign(userID, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) verify(token, wantType string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" || claims.TokenType != wantType {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
