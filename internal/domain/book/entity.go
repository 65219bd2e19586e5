package book

import "time"

// Book is a PDF book with an optional cover image. FileKey and CoverKey are
// storage keys (sanitized, timestamp-prefixed); FileName is the untouched
// display name the admin sees. FileURL and CoverURL are resolved from the
// keys on every read and never persisted.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileKey     string    `json:"file_key"`
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	CoverKey    string    `json:"cover_key,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
