package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streamtube/backend/internal/auth"
	"github.com/streamtube/backend/internal/models"
	"github.com/streamtube/backend/internal/repositories"
)

type likeStoreStub struct {
	created   []models.Like
	deleted   [][2]string
	createErr error
	deleteErr error
}

func (s *likeStoreStub) Create(_ context.Context, like models.Like) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, like)
	return nil
}

func (s *likeStoreStub) Delete(_ context.Context, userID, videoID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, [2]string{userID, videoID})
	return nil
}

func newLikeRequest(method, body string, authenticated bool) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/videos/like", bytes.NewBufferString(body))
	if authenticated {
		req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	}
	return req
}

func TestLikeHandlerCreate(t *testing.T) {
	store := &likeStoreStub{}
	handler := LikeHandler{Likes: store}

	rec := httptest.NewRecorder()
	handler.Handle(rec, newLikeRequest(http.MethodPost, `{"videoId":"video-1"}`, true))

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one like, got %d", len(store.created))
	}
	like := store.created[0]
	if like.UserID != "user-1" || like.VideoID != "video-1" || like.ID == "" {
		t.Fatalf("unexpected like: %+v", like)
	}
}

func TestLikeHandlerCreateDuplicate(t *testing.T) {
	handler := LikeHandler{Likes: &likeStoreStub{createErr: repositories.ErrConflict}}

	rec := httptest.NewRecorder()
	handler.Handle(rec, newLikeRequest(http.MethodPost, `{"videoId":"video-1"}`, true))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestLikeHandlerCreateRejections(t *testing.T) {
	cases := []struct {
		name       string
		method     string
		body       string
		auth       bool
		storeErr   error
		wantStatus int
	}{
		{"wrongMethod", http.MethodGet, `{"videoId":"v"}`, true, nil, http.StatusMethodNotAllowed},
		{"unauthenticated", http.MethodPost, `{"videoId":"v"}`, false, nil, http.StatusUnauthorized},
		{"badJSON", http.MethodPost, "{", true, nil, http.StatusBadRequest},
		{"missingVideoID", http.MethodPost, `{"videoId":""}`, true, nil, http.StatusBadRequest},
		{"unknownVideo", http.MethodPost, `{"videoId":"v"}`, true, repositories.ErrNotFound, http.StatusNotFound},
		{"storeFailure", http.MethodPost, `{"videoId":"v"}`, true, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := LikeHandler{Likes: &likeStoreStub{createErr: tc.storeErr}}
			rec := httptest.NewRecorder()

			handler.Handle(rec, newLikeRequest(tc.method, tc.body, tc.auth))

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestLikeHandlerDelete(t *testing.T) {
	store := &likeStoreStub{}
	handler := LikeHandler{Likes: store}

	rec := httptest.NewRecorder()
	handler.Handle(rec, newLikeRequest(http.MethodDelete, `{"videoId":"video-1"}`, true))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != [2]string{"user-1", "video-1"} {
		t.Fatalf("unexpected deletes: %v", store.deleted)
	}
}

func TestLikeHandlerDeleteMissing(t *testing.T) {
	handler := LikeHandler{Likes: &likeStoreStub{deleteErr: repositories.ErrNotFound}}

	rec := httptest.NewRecorder()
	handler.Handle(rec, newLikeRequest(http.MethodDelete, `{"videoId":"video-1"}`, true))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
