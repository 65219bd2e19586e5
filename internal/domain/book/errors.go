package book

import "errors"

var (
	ErrNotFound      = errors.New("book not found")
	ErrEmptyFile     = errors.New("file is empty")
	ErrFileTooLarge  = errors.New("file exceeds maximum allowed size")
	ErrNotPDF        = errors.New("file is not a PDF")
	ErrCoverNotImage = errors.New("cover is not an image")
)
