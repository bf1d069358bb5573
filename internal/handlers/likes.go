package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streamtube/backend/internal/auth"
	"github.com/streamtube/backend/internal/logging"
	"github.com/streamtube/backend/internal/models"
	"github.com/streamtube/backend/internal/repositories"
)

// LikeHandler lets authenticated users like and unlike videos.
type LikeHandler struct {
	Likes   LikeStore
	NowFunc func() time.Time
}

type likeRequest struct {
	VideoID string `json:"videoId"`
}

// Handle serves POST (like) and DELETE (unlike) on /api/v1/videos/like.
func (h LikeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h LikeHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Likes == nil {
		logger.Error("like store unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "like services unavailable"})
		return
	}

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	videoID, ok := h.videoID(w, r)
	if !ok {
		return
	}

	like := models.Like{
		ID:        uuid.NewString(),
		UserID:    userID,
		VideoID:   videoID,
		CreatedAt: h.now(),
	}

	if err := h.Likes.Create(ctx, like); err != nil {
		switch {
		case errors.Is(err, repositories.ErrConflict):
			logger.Warn("duplicate like", "userId", userID, "videoId", videoID)
			respondJSON(ctx, w, http.StatusConflict, map[string]string{"error": "video already liked"})
		case errors.Is(err, repositories.ErrNotFound):
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
		default:
			logger.Error("create like", "error", err, "userId", userID, "videoId", videoID)
			respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to like video"})
		}
		return
	}

	respondJSON(ctx, w, http.StatusCreated, map[string]string{"status": "liked"})
}

func (h LikeHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Likes == nil {
		logger.Error("like store unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "like services unavailable"})
		return
	}

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	videoID, ok := h.videoID(w, r)
	if !ok {
		return
	}

	if err := h.Likes.Delete(ctx, userID, videoID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "like not found"})
			return
		}
		logger.Error("delete like", "error", err, "userId", userID, "videoId", videoID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to remove like"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h LikeHandler) videoID(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()

	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return "", false
	}

	videoID := strings.TrimSpace(req.VideoID)
	if videoID == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "videoId is required"})
		return "", false
	}

	return videoID, true
}

func (h LikeHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
