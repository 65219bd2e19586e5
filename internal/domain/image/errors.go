package image

import "errors"

var (
	ErrNotFound     = errors.New("image not found")
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	ErrInvalidType  = errors.New("file type is not allowed")
)
