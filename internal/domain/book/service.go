package book

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
	collection  = "books"
	pdfPrefix   = "pdfs"
	coverPrefix = "covers"

	MaxPDFSize   = 100 * 1024 * 1024 // 100 MB
	MaxCoverSize = 50 * 1024 * 1024  // 50 MB
)

var allowedCoverTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Service composes the blob and record stores into the PDF book lifecycle.
// Books carry one mandatory blob (the PDF) and one optional blob (the
// cover), which makes the compensation paths slightly longer than for
// images: every blob uploaded in an operation that then fails is deleted
// best-effort, and old blobs are only removed once the record points at
// their replacements.
type Service struct {
	records recordstore.Store
	blobs   blobstore.Store
}

func NewService(records recordstore.Store, blobs blobstore.Store) *Service {
	return &Service{records: records, blobs: blobs}
}

func (s *Service) uploadPDF(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > MaxPDFSize {
		return "", ErrFileTooLarge
	}

	file, mimeType, err := content.SniffContentType(fh)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if mimeType != "application/pdf" {
		return "", ErrNotPDF
	}

	key := blobstore.NewKey(pdfPrefix, fh.Filename)
	err = s.blobs.Put(ctx, key, file, fh.Size, "application/pdf", map[string]string{
		"originalName": fh.Filename,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) uploadCover(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > MaxCoverSize {
		return "", ErrFileTooLarge
	}

	file, mimeType, err := content.SniffContentType(fh)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if !allowedCoverTypes[mimeType] {
		return "", ErrCoverNotImage
	}

	key := blobstore.NewKey(coverPrefix, fh.Filename)
	err = s.blobs.Put(ctx, key, file, fh.Size, mimeType, map[string]string{
		"originalName": fh.Filename,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) compensate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			log.Printf("orphan compensation failed: book blob %s: %v", key, err)
		}
	}
}

// Create uploads the PDF (and cover, when given) and then creates the
// record. Any blob left behind by a failed later step is compensated away
// before the original error is surfaced.
func (s *Service) Create(ctx context.Context, title, description string, pdf, cover *multipart.FileHeader) (*Book, error) {
	fileKey, err := s.uploadPDF(ctx, pdf)
	if err != nil {
		return nil, err
	}

	var coverKey string
	if cover != nil {
		coverKey, err = s.uploadCover(ctx, cover)
		if err != nil {
			s.compensate(ctx, fileKey)
			return nil, err
		}
	}

	b := &Book{
		Title:       title,
		Description: description,
		FileKey:     fileKey,
		FileName:    pdf.Filename,
		CoverKey:    coverKey,
		Size:        pdf.Size,
		CreatedAt:   time.Now().UTC(),
	}

	data, err := recordstore.Encode(b)
	if err != nil {
		return nil, err
	}
	delete(data, "file_url")
	delete(data, "cover_url")

	id, err := s.records.Create(ctx, collection, data)
	if err != nil {
		s.compensate(ctx, fileKey, coverKey)
		return nil, fmt.Errorf("create book record: %w", err)
	}

	b.ID = id
	s.resolveURLs(ctx, b)
	return b, nil
}

// Update partial-merges metadata and optionally replaces the PDF and/or the
// cover. New blobs go up first; the record then points at them; only then do
// the replaced blobs go away. If the record update fails the old blobs stay
// and the fresh uploads are compensated.
func (s *Service) Update(ctx context.Context, id, title, description string, pdf, cover *multipart.FileHeader) (*Book, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	partial := map[string]any{
		"title":       title,
		"description": description,
	}

	var newFileKey, newCoverKey string
	if pdf != nil {
		newFileKey, err = s.uploadPDF(ctx, pdf)
		if err != nil {
			return nil, err
		}
		partial["file_key"] = newFileKey
		partial["file_name"] = pdf.Filename
		partial["size"] = pdf.Size
	}
	if cover != nil {
		newCoverKey, err = s.uploadCover(ctx, cover)
		if err != nil {
			s.compensate(ctx, newFileKey)
			return nil, err
		}
		partial["cover_key"] = newCoverKey
	}

	if err := s.records.Update(ctx, collection, id, partial); err != nil {
		s.compensate(ctx, newFileKey, newCoverKey)
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update book record: %w", err)
	}

	// the record now points at the replacements; stale blobs can go
	if newFileKey != "" && existing.FileKey != "" && existing.FileKey != newFileKey {
		s.compensate(ctx, existing.FileKey)
	}
	if newCoverKey != "" && existing.CoverKey != "" && existing.CoverKey != newCoverKey {
		s.compensate(ctx, existing.CoverKey)
	}

	return s.get(ctx, id)
}

// Delete removes the book's blobs and record. A blob failure does not stop
// the record deletion; one-sided failures surface as a PartialFailure so the
// caller can retry the failed side. Deleting an id that is already gone is a
// no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var blobErr error
	if existing.FileKey != "" {
		blobErr = s.blobs.Delete(ctx, existing.FileKey)
	}
	if existing.CoverKey != "" {
		if err := s.blobs.Delete(ctx, existing.CoverKey); err != nil && blobErr == nil {
			blobErr = err
		}
	}

	recordErr := s.records.Delete(ctx, collection, id)

	if blobErr != nil || recordErr != nil {
		return &content.PartialFailure{BlobErr: blobErr, RecordErr: recordErr}
	}
	return nil
}

// List materializes the collection with freshly resolved download URLs.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	docs, err := s.records.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(docs))
	for _, doc := range docs {
		var b Book
		if err := recordstore.Decode(doc, &b); err != nil {
			return nil, err
		}
		s.resolveURLs(ctx, &b)
		books = append(books, b)
	}
	return books, nil
}

// resolveURLs fills in download URLs best-effort: records stay readable
// even when the blob backend cannot presign right now, and missing blobs
// just leave the URL empty.
func (s *Service) resolveURLs(ctx context.Context, b *Book) {
	b.FileURL = s.resolveURL(ctx, b.FileKey)
	b.CoverURL = s.resolveURL(ctx, b.CoverKey)
}

func (s *Service) resolveURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.blobs.URL(ctx, key)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			log.Printf("url resolve failed: book blob %s: %v", key, err)
		}
		return ""
	}
	return url
}

func (s *Service) get(ctx context.Context, id string) (*Book, error) {
	docs, err := s.records.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if doc.ID == id {
			var b Book
			if err := recordstore.Decode(doc, &b); err != nil {
				return nil, err
			}
			s.resolveURLs(ctx, &b)
			return &b, nil
		}
	}
	return nil, ErrNotFound
}
