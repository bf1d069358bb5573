package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/streamtube/backend/internal/auth"
	"github.com/streamtube/backend/internal/config"
	"github.com/streamtube/backend/internal/db"
	"github.com/streamtube/backend/internal/handlers"
	"github.com/streamtube/backend/internal/media"
	"github.com/streamtube/backend/internal/middleware"
	"github.com/streamtube/backend/internal/repositories"
	"github.com/streamtube/backend/internal/storage"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config) (handlers.Dependencies, error) {
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return handlers.Dependencies{}, errors.New("token secret is not configured; set STREAMTUBE_TOKEN_SECRET")
	}

	objectStore, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
	if err != nil {
		return handlers.Dependencies{}, err
	}

	sessionStore := repositories.NewPostgresSessionStore(pool)
	sessions := auth.NewManager(cfg.TokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, sessionStore)

	videoRepo := repositories.NewPostgresVideoRepository(pool)
	uploader := media.NewUploader(objectStore, slog.Default())
	ingestor := media.NewIngestor(uploader, videoRepo, cfg.StagingDir)

	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRate.Requests, cfg.AuthRate.Window, cfg.AuthRate.Burst, cfg.AuthRate.TTL)

	return handlers.Dependencies{
		Users:          repositories.NewPostgresUserRepository(pool),
		Sessions:       sessions,
		Ingestor:       ingestor,
		Videos:         videoRepo,
		Likes:          repositories.NewPostgresLikeRepository(pool),
		Authenticate:   middleware.Authenticate(sessions),
		AuthLimiter:    authLimiter,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, nil
}
