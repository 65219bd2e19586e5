package image

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"mediaconsole/internal/blobstore"
	"mediaconsole/internal/domain/content"
	"mediaconsole/internal/recordstore"
)

const (
	collection = "images"
	keyPrefix  = "images"
	MaxSize    = 50 * 1024 * 1024 // 50 MB
)

var allowedTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Service composes the blob and record stores into the image lifecycle:
// upload first, record second, with a best-effort compensating delete when
// the record half fails.
type Service struct {
	records recordstore.Store
	blobs   blobstore.Store
}

func NewService(records recordstore.Store, blobs blobstore.Store) *Service {
	return &Service{records: records, blobs: blobs}
}

func validateFile(fh *multipart.FileHeader) error {
	if fh.Size == 0 {
		return ErrEmptyFile
	}
	if fh.Size > MaxSize {
		return ErrFileTooLarge
	}
	return nil
}

func (s *Service) upload(ctx context.Context, fh *multipart.FileHeader) (key, mimeType string, err error) {
	file, mimeType, err := content.SniffContentType(fh)
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	if !allowedTypes[mimeType] {
		return "", "", ErrInvalidType
	}

	key = blobstore.NewKey(keyPrefix, fh.Filename)
	err = s.blobs.Put(ctx, key, file, fh.Size, mimeType, map[string]string{
		"originalName": fh.Filename,
	})
	if err != nil {
		return "", "", err
	}
	return key, mimeType, nil
}

// Create uploads the image and then creates its record. If the record store
// rejects the create after a successful upload, the orphaned blob is deleted
// best-effort before the original error is surfaced.
func (s *Service) Create(ctx context.Context, fh *multipart.FileHeader) (*Image, error) {
	if err := validateFile(fh); err != nil {
		return nil, err
	}

	key, mimeType, err := s.upload(ctx, fh)
	if err != nil {
		return nil, err
	}

	img := &Image{
		BlobKey:     key,
		FileName:    fh.Filename,
		ContentType: mimeType,
		Size:        fh.Size,
		CreatedAt:   time.Now().UTC(),
	}

	data, err := recordstore.Encode(img)
	if err != nil {
		return nil, err
	}
	delete(data, "url")

	id, err := s.records.Create(ctx, collection, data)
	if err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			log.Printf("orphan compensation failed: image blob %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("create image record: %w", err)
	}

	img.ID = id
	s.resolveURL(ctx, img)
	return img, nil
}

// Update replaces the image file: new blob first, then the record, then the
// old blob goes away. If the record update fails, the old blob is left
// untouched and the new upload is compensated away.
func (s *Service) Update(ctx context.Context, id string, fh *multipart.FileHeader) (*Image, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateFile(fh); err != nil {
		return nil, err
	}

	key, mimeType, err := s.upload(ctx, fh)
	if err != nil {
		return nil, err
	}

	partial := map[string]any{
		"blob_key":     key,
		"file_name":    fh.Filename,
		"content_type": mimeType,
		"size":         fh.Size,
	}
	if err := s.records.Update(ctx, collection, id, partial); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			log.Printf("orphan compensation failed: image blob %s: %v", key, delErr)
		}
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update image record: %w", err)
	}

	if existing.BlobKey != "" && existing.BlobKey != key {
		if delErr := s.blobs.Delete(ctx, existing.BlobKey); delErr != nil {
			log.Printf("stale blob cleanup failed: image blob %s: %v", existing.BlobKey, delErr)
		}
	}

	existing.BlobKey = key
	existing.FileName = fh.Filename
	existing.ContentType = mimeType
	existing.Size = fh.Size
	s.resolveURL(ctx, existing)
	return existing, nil
}

// Delete removes blob and record. Blob deletion failures do not stop the
// record deletion; a one-sided failure surfaces as a PartialFailure naming
// the side to retry. Deleting an id that is already gone is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var blobErr error
	if existing.BlobKey != "" {
		blobErr = s.blobs.Delete(ctx, existing.BlobKey)
	}
	recordErr := s.records.Delete(ctx, collection, id)

	if blobErr != nil || recordErr != nil {
		return &content.PartialFailure{BlobErr: blobErr, RecordErr: recordErr}
	}
	return nil
}

// List materializes the collection, re-resolving every blob URL so signed
// URLs are always inside their expiry window.
func (s *Service) List(ctx context.Context) ([]Image, error) {
	docs, err := s.records.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(docs))
	for _, doc := range docs {
		var img Image
		if err := recordstore.Decode(doc, &img); err != nil {
			return nil, err
		}
		if img.BlobKey != "" {
			url, err := s.blobs.URL(ctx, img.BlobKey)
			if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
				return nil, err
			}
			img.URL = url
		}
		images = append(images, img)
	}
	return images, nil
}

// resolveURL fills in the download URL best-effort: the record write has
// already succeeded, so a presign hiccup is logged rather than failing the
// operation. A missing blob just leaves the URL empty.
func (s *Service) resolveURL(ctx context.Context, img *Image) {
	if img.BlobKey == "" {
		return
	}
	url, err := s.blobs.URL(ctx, img.BlobKey)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			log.Printf("url resolve failed: image blob %s: %v", img.BlobKey, err)
		}
		return
	}
	img.URL = url
}

func (s *Service) get(ctx context.Context, id string) (*Image, error) {
	docs, err := s.records.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if doc.ID == id {
			var img Image
			if err := recordstore.Decode(doc, &img); err != nil {
				return nil, err
			}
			return &img, nil
		}
	}
	return nil, ErrNotFound
}
