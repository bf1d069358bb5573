package media

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
)

// AssetKind distinguishes the primary video from its optional thumbnail. It
// selects the remote resource prefix but not the upload contract.
type AssetKind string

const (
	KindVideo     AssetKind = "video"
	KindThumbnail AssetKind = "thumbnail"
)

// Form field names accepted by the ingestion endpoint.
const (
	videoField     = "video"
	thumbnailField = "thumbnail"
)

// StagedAsset references one uploaded file written to transient local storage.
// It is owned by a single ingestion request and is removed from disk no later
// than the end of that request.
type StagedAsset struct {
	Path string
	Name string
	Kind AssetKind
	Size int64
}

// StagedForm holds the staged assets of one submission. A nil field means the
// caller did not supply that asset.
type StagedForm struct {
	Video     *StagedAsset
	Thumbnail *StagedAsset
}

// StageForm copies the first file of each recognized multipart field into dir
// and reports a handle per field. Presence is modelled structurally: absent
// fields yield nil handles, never an error. Staged files are not deleted here;
// the caller owns their lifetime.
func StageForm(form *multipart.Form, dir string) (StagedForm, error) {
	var staged StagedForm
	if form == nil {
		return staged, nil
	}

	video, err := stageField(form, videoField, KindVideo, dir)
	if err != nil {
		return staged, err
	}
	staged.Video = video

	thumbnail, err := stageField(form, thumbnailField, KindThumbnail, dir)
	if err != nil {
		staged.discard(nil)
		return StagedForm{}, err
	}
	staged.Thumbnail = thumbnail

	return staged, nil
}

func stageField(form *multipart.Form, field string, kind AssetKind, dir string) (*StagedAsset, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	header := headers[0]

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s upload: %w", field, err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(dir, fmt.Sprintf("%s-*%s", field, filepath.Ext(header.Filename)))
	if err != nil {
		return nil, fmt.Errorf("create staging file for %s: %w", field, err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return nil, fmt.Errorf("stage %s upload: %w", field, err)
	}

	return &StagedAsset{
		Path: dst.Name(),
		Name: header.Filename,
		Kind: kind,
		Size: size,
	}, nil
}

// discard removes any staged files still on disk. Removal failures are logged
// and never escalated; they must not mask the error being reported.
func (f *StagedForm) discard(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, asset := range []*StagedAsset{f.Video, f.Thumbnail} {
		if err := asset.remove(); err != nil {
			logger.Warn("discard staged asset", "path", asset.Path, "error", err)
		}
	}
}

// remove deletes the staged file, tolerating a prior deletion.
func (a *StagedAsset) remove() error {
	if a == nil || a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
