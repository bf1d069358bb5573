package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/streamtube/backend/internal/auth"
	"github.com/streamtube/backend/internal/models"
	"github.com/streamtube/backend/internal/repositories"
)

type userStoreStub struct {
	users     map[string]models.User
	created   []models.User
	createErr error
	findErr   error
}

func (s *userStoreStub) Create(_ context.Context, user models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, user)
	if s.users == nil {
		s.users = make(map[string]models.User)
	}
	s.users[user.Email] = user
	return nil
}

func (s *userStoreStub) FindByEmail(_ context.Context, email string) (models.User, error) {
	if s.findErr != nil {
		return models.User{}, s.findErr
	}
	user, ok := s.users[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

type sessionManagerStub struct {
	issued     []string
	refreshed  []string
	revoked    []string
	issueErr   error
	refreshErr error
	revokeErr  error
}

func (s *sessionManagerStub) Issue(_ context.Context, userID string) (models.SessionTokens, error) {
	if s.issueErr != nil {
		return models.SessionTokens{}, s.issueErr
	}
	s.issued = append(s.issued, userID)
	return models.SessionTokens{AccessToken: "access-" + userID, RefreshToken: "refresh-" + userID}, nil
}

func (s *sessionManagerStub) Refresh(_ context.Context, refreshToken string) (models.SessionTokens, error) {
	if s.refreshErr != nil {
		return models.SessionTokens{}, s.refreshErr
	}
	s.refreshed = append(s.refreshed, refreshToken)
	return models.SessionTokens{AccessToken: "access-new", RefreshToken: "refresh-new"}, nil
}

func (s *sessionManagerStub) Revoke(_ context.Context, userID string) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked = append(s.revoked, userID)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hashed)
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	users := &userStoreStub{users: map[string]models.User{
		"alice@example.com": {ID: "user-1", Email: "alice@example.com", Password: hashPassword(t, "secretpass")},
	}}
	sessions := &sessionManagerStub{}
	handler := AuthHandler{Users: users, Sessions: sessions}

	body, _ := json.Marshal(map[string]string{"email": "Alice@Example.com", "password": "secretpass"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}
	if len(sessions.issued) != 1 || sessions.issued[0] != "user-1" {
		t.Fatalf("unexpected issued sessions: %v", sessions.issued)
	}

	var resp authResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected tokens in response: %+v", resp)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	users := &userStoreStub{users: map[string]models.User{
		"alice@example.com": {ID: "user-1", Email: "alice@example.com", Password: hashPassword(t, "secretpass")},
	}}

	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"badJSON", "{", http.StatusBadRequest},
		{"missingCredentials", `{"email":"","password":""}`, http.StatusBadRequest},
		{"unknownUser", `{"email":"bob@example.com","password":"secretpass"}`, http.StatusUnauthorized},
		{"wrongPassword", `{"email":"alice@example.com","password":"wrong"}`, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := AuthHandler{Users: users, Sessions: &sessionManagerStub{}}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestAuthHandlerLoginStoreFailure(t *testing.T) {
	handler := AuthHandler{
		Users:    &userStoreStub{findErr: errors.New("db down")},
		Sessions: &sessionManagerStub{},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"email":"alice@example.com","password":"secretpass"}`))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	// An outage must not masquerade as bad credentials.
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

func TestAuthHandlerLoginRateLimited(t *testing.T) {
	handler := AuthHandler{Users: &userStoreStub{}, Sessions: &sessionManagerStub{}, Limiter: denyAllLimiter{}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"email":"a@b.com","password":"x"}`))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", rec.Code)
	}
}

func TestAuthHandlerSignUp(t *testing.T) {
	users := &userStoreStub{}
	sessions := &sessionManagerStub{}
	handler := AuthHandler{Users: users, Sessions: sessions, NowFunc: func() time.Time {
		return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	}}

	body, _ := json.Marshal(map[string]string{"email": "new@example.com", "password": "longenough"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SignUp(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}
	if len(users.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(users.created))
	}
	created := users.created[0]
	if created.Email != "new@example.com" || created.ID == "" {
		t.Fatalf("unexpected created user: %+v", created)
	}
	if created.Password == "longenough" {
		t.Fatal("expected password to be hashed")
	}
	if len(sessions.issued) != 1 {
		t.Fatalf("expected session to be issued, got %v", sessions.issued)
	}
}

func TestAuthHandlerSignUpValidation(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
	}{
		{"badJSON", "{", nil, http.StatusBadRequest},
		{"missingEmail", `{"email":"","password":"longenough"}`, nil, http.StatusBadRequest},
		{"invalidEmail", `{"email":"not-an-email","password":"longenough"}`, nil, http.StatusBadRequest},
		{"shortPassword", `{"email":"a@b.com","password":"short"}`, nil, http.StatusBadRequest},
		{"duplicateAccount", `{"email":"a@b.com","password":"longenough"}`, repositories.ErrConflict, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := AuthHandler{Users: &userStoreStub{createErr: tc.createErr}, Sessions: &sessionManagerStub{}}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()

			handler.SignUp(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d got %d (%s)", tc.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthHandlerRefresh(t *testing.T) {
	sessions := &sessionManagerStub{}
	handler := AuthHandler{Sessions: sessions}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewBufferString(`{"refreshToken":"refresh-old"}`))
	rec := httptest.NewRecorder()

	handler.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(sessions.refreshed) != 1 || sessions.refreshed[0] != "refresh-old" {
		t.Fatalf("unexpected refresh calls: %v", sessions.refreshed)
	}
}

func TestAuthHandlerRefreshRejections(t *testing.T) {
	cases := []struct {
		name       string
		refreshErr error
		wantStatus int
	}{
		{"sessionInvalid", auth.ErrSessionInvalid, http.StatusUnauthorized},
		{"tokenExpired", auth.ErrTokenExpired, http.StatusUnauthorized},
		{"tokenInvalid", auth.ErrTokenInvalid, http.StatusUnauthorized},
		{"storeFailure", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := AuthHandler{Sessions: &sessionManagerStub{refreshErr: tc.refreshErr}}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewBufferString(`{"refreshToken":"tok"}`))
			rec := httptest.NewRecorder()

			handler.Refresh(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	sessions := &sessionManagerStub{}
	handler := AuthHandler{Sessions: sessions}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "user-1" {
		t.Fatalf("unexpected revoked sessions: %v", sessions.revoked)
	}
}

func TestAuthHandlerLogoutUnauthenticated(t *testing.T) {
	handler := AuthHandler{Sessions: &sessionManagerStub{}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	handler.Logout(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
