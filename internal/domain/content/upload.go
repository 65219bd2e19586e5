package content

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

// SniffContentType reads the first 512 bytes of an uploaded file and rewinds
// it, returning the detected MIME type without charset parameters.
func SniffContentType(fh *multipart.FileHeader) (multipart.File, string, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open uploaded file: %w", err)
	}

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := http.DetectContentType(buf[:n])
	mimeType = strings.Split(mimeType, ";")[0]

	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, "", fmt.Errorf("rewind uploaded file: %w", err)
	}
	return file, mimeType, nil
}
