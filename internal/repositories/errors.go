package repositories

import "errors"

var (
	// ErrNotFound indicates the user, video, or like does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates the write lost to a uniqueness constraint, such
	// as a duplicate email or a second like on the same video.
	ErrConflict = errors.New("record conflict")
)
