package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streamtube/backend/internal/logging"
	"github.com/streamtube/backend/internal/models"
)

// VideoCreator persists the final video record once all uploads succeed.
type VideoCreator interface {
	Create(ctx context.Context, video models.Video) error
}

// AssetUploader transmits one staged asset to the remote object store.
type AssetUploader interface {
	Upload(ctx context.Context, asset StagedAsset) (RemoteAsset, error)
}

// IngestRequest carries one media submission through the pipeline.
type IngestRequest struct {
	OwnerID     string
	Title       string
	Description string
	// Published is nil when the caller omitted the flag; it defaults to true.
	Published *bool
	Form      *multipart.Form
}

// Ingestor drives a submission from validation through staging, uploads, and
// the metadata commit. The contract is all-or-nothing from the caller's point
// of view: a failure at any stage is terminal for the request and no video
// record is created. Uploads are sequential; the video must succeed before the
// thumbnail is attempted, and there are no retries.
type Ingestor struct {
	uploader   AssetUploader
	videos     VideoCreator
	stagingDir string
	nowFunc    func() time.Time
}

// NewIngestor constructs an Ingestor staging uploads in the provided directory.
func NewIngestor(uploader AssetUploader, videos VideoCreator, stagingDir string) *Ingestor {
	return &Ingestor{
		uploader:   uploader,
		videos:     videos,
		stagingDir: stagingDir,
		nowFunc:    func() time.Time { return time.Now().UTC() },
	}
}

// Ingest validates the submission, uploads its assets, and persists the video
// record. On any failure the staged files are removed before returning; a
// video asset already uploaded when a later stage fails is left behind in the
// object store (logged, not reconciled).
func (i *Ingestor) Ingest(ctx context.Context, req IngestRequest) (models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "media.ingest")
	defer span.End()
	logger := logging.FromContext(ctx)

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return models.Video{}, ErrMissingField
	}

	staged, err := StageForm(req.Form, i.stagingDir)
	if err != nil {
		return models.Video{}, fmt.Errorf("stage submission: %w", err)
	}
	defer staged.discard(logger)

	if staged.Video == nil {
		return models.Video{}, ErrMissingAsset
	}

	videoAsset, err := i.uploader.Upload(ctx, *staged.Video)
	if err != nil {
		logger.Error("video upload failed", "error", err)
		return models.Video{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	thumbnailURL := ""
	if staged.Thumbnail != nil {
		thumbnailAsset, err := i.uploader.Upload(ctx, *staged.Thumbnail)
		if err != nil {
			// The video object is already in the store and now unreferenced.
			logger.Error("thumbnail upload failed, video object orphaned",
				"videoUrl", videoAsset.URL, "error", err)
			return models.Video{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		thumbnailURL = thumbnailAsset.URL
	}

	now := i.nowFunc()
	video := models.Video{
		ID:           uuid.NewString(),
		OwnerID:      req.OwnerID,
		Title:        title,
		Description:  description,
		VideoURL:     videoAsset.URL,
		ThumbnailURL: thumbnailURL,
		Published:    req.Published == nil || *req.Published,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := i.videos.Create(ctx, video); err != nil {
		logger.Error("video record persistence failed, uploaded objects orphaned",
			"videoUrl", video.VideoURL, "thumbnailUrl", video.ThumbnailURL, "error", err)
		return models.Video{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	return video, nil
}
