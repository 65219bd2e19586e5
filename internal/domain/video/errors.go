package video

import "errors"

var (
	ErrNotFound   = errors.New("video not found")
	ErrInvalidURL = errors.New("not a recognized YouTube URL")
)
