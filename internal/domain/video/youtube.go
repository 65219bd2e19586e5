package video

import "regexp"

// YouTube video ids are always 11 characters; anything else means the URL
// has no usable id segment.
var videoIDPattern = regexp.MustCompile(`(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)

// ExtractVideoID pulls the 11-character video id out of a YouTube URL in any
// of its common shapes (watch, share, embed). Empty string means no match.
func ExtractVideoID(url string) string {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil || len(m[2]) != 11 {
		return ""
	}
	return m[2]
}

// ThumbnailURL derives the default thumbnail location for a video id.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/0.jpg"
}
