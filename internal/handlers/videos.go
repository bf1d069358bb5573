package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/streamtube/backend/internal/auth"
	"github.com/streamtube/backend/internal/logging"
	"github.com/streamtube/backend/internal/media"
	"github.com/streamtube/backend/internal/models"
)

// defaultMaxUploadBytes caps multipart submissions when no limit is configured.
const defaultMaxUploadBytes = 512 << 20

// multipartMemoryLimit is how much of a submission may be buffered in memory
// before the transport spills parts to disk.
const multipartMemoryLimit = 8 << 20

// VideoHandler provides the media ingestion and feed endpoints.
type VideoHandler struct {
	Ingestor       MediaIngestor
	Videos         VideoStore
	MaxUploadBytes int64
}

// Upload handles POST /api/v1/videos. It accepts a multipart submission with
// text fields title, description, optional isPublished, a required video file,
// and an optional thumbnail.
func (h VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Ingestor == nil {
		logger.Error("media ingestor unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "media services unavailable"})
		return
	}

	ownerID := auth.UserIDFromContext(ctx)
	if ownerID == "" {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	maxBytes := h.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		logger.Warn("invalid multipart submission", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid multipart submission"})
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.Warn("remove multipart temp files", "error", err)
		}
	}()

	req := media.IngestRequest{
		OwnerID:     ownerID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Form:        r.MultipartForm,
	}

	if raw := strings.TrimSpace(r.FormValue("isPublished")); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "isPublished must be a boolean"})
			return
		}
		req.Published = &published
	}

	video, err := h.Ingestor.Ingest(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrMissingField):
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "title and description are required"})
		case errors.Is(err, media.ErrMissingAsset):
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "video file is required"})
		case errors.Is(err, media.ErrUploadFailed):
			logger.Error("ingestion upload failed", "error", err, "ownerId", ownerID)
			respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to upload media"})
		default:
			logger.Error("ingestion failed", "error", err, "ownerId", ownerID)
			respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to save video"})
		}
		return
	}

	respondJSON(ctx, w, http.StatusCreated, createVideoResponse{Video: video})
}

// Feed handles GET /api/v1/videos/feed.
func (h VideoHandler) Feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Videos == nil {
		logger.Error("video store unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "video services unavailable"})
		return
	}

	videos, err := h.Videos.ListPublished(ctx)
	if err != nil {
		logger.Error("list published videos", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to load feed"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, feedResponse{Videos: videos})
}

type createVideoResponse struct {
	Video models.Video `json:"video"`
}

type feedResponse struct {
	Videos []models.Video `json:"videos"`
}
