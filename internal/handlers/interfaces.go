package handlers

import (
	"context"

	"github.com/streamtube/backend/internal/media"
	"github.com/streamtube/backend/internal/models"
)

// UserStore captures the persistence operations required by the auth handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// SessionManager issues, refreshes, and revokes authentication tokens.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error)
	Revoke(ctx context.Context, userID string) error
}

// MediaIngestor drives a media submission through staging, upload, and commit.
type MediaIngestor interface {
	Ingest(ctx context.Context, req media.IngestRequest) (models.Video, error)
}

// VideoStore captures read access for published videos.
type VideoStore interface {
	ListPublished(ctx context.Context) ([]models.Video, error)
}

// LikeStore captures persistence for video likes.
type LikeStore interface {
	Create(ctx context.Context, like models.Like) error
	Delete(ctx context.Context, userID, videoID string) error
}
