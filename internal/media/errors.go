package media

import "errors"

var (
	// ErrMissingField indicates a required text field was absent or blank.
	ErrMissingField = errors.New("title and description are required")
	// ErrMissingAsset indicates no video file was submitted.
	ErrMissingAsset = errors.New("video file is required")
	// ErrUploadFailed indicates the object store did not accept an asset or
	// returned no usable location.
	ErrUploadFailed = errors.New("asset upload failed")
	// ErrPersistFailed indicates the video record could not be stored after
	// its assets were uploaded.
	ErrPersistFailed = errors.New("video record could not be saved")
)
