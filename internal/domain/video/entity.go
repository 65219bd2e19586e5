package video

import "time"

// Video is a linked YouTube video. The file itself is never stored here:
// SourceURL points at the host and ThumbnailURL is derived from the video
// id, so this record type never touches the blob store.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SourceURL    string    `json:"source_url"`
	VideoID      string    `json:"video_id"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}
