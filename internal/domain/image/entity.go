package image

import "time"

// Image is a stored gallery image. BlobKey points into the blob store; URL
// is resolved from it on every read and never persisted, since signed URLs
// expire.
type Image struct {
	ID          string    `json:"id"`
	BlobKey     string    `json:"blob_key"`
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
