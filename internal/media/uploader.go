package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// ObjectStorage transmits asset bytes to the remote object store and returns
// a durable retrieval location.
type ObjectStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// RemoteAsset is the durable result of a successful upload. It is a value:
// either embedded into a video record or discarded.
type RemoteAsset struct {
	URL  string
	Kind AssetKind
}

// Uploader transmits staged assets to object storage. The staged local copy is
// removed exactly once before Upload returns, success or failure; removal
// errors are logged, never returned.
type Uploader struct {
	storage ObjectStorage
	logger  *slog.Logger
}

// NewUploader constructs an Uploader backed by the provided object storage.
func NewUploader(storage ObjectStorage, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{storage: storage, logger: logger}
}

// Upload sends the staged asset to the object store and returns its location.
func (u *Uploader) Upload(ctx context.Context, asset StagedAsset) (RemoteAsset, error) {
	if u.storage == nil {
		return RemoteAsset{}, errors.New("uploader: object storage not configured")
	}

	defer func() {
		if err := asset.remove(); err != nil {
			u.logger.Warn("remove staged asset", "path", asset.Path, "error", err)
		}
	}()

	file, err := os.Open(asset.Path)
	if err != nil {
		return RemoteAsset{}, fmt.Errorf("open staged asset: %w", err)
	}
	defer file.Close()

	key := path.Join(string(asset.Kind)+"s", uuid.NewString()+filepath.Ext(asset.Name))

	location, err := u.storage.Save(ctx, key, file)
	if err != nil {
		return RemoteAsset{}, fmt.Errorf("save %s to object store: %w", asset.Kind, err)
	}
	if location == "" {
		return RemoteAsset{}, fmt.Errorf("object store returned no location for %s", asset.Kind)
	}

	return RemoteAsset{URL: location, Kind: asset.Kind}, nil
}
