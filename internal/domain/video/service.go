package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediaconsole/internal/recordstore"
)

const collection = "videos"

// Service manages video records. Videos carry no blob: the source URL is
// validated and the thumbnail derived deterministically, nothing is
// uploaded.
type Service struct {
	records recordstore.Store
}

func NewService(records recordstore.Store) *Service {
	return &Service{records: records}
}

func (s *Service) Create(ctx context.Context, title, sourceURL string) (*Video, error) {
	videoID := ExtractVideoID(sourceURL)
	if videoID == "" {
		return nil, ErrInvalidURL
	}

	v := &Video{
		Title:        title,
		SourceURL:    sourceURL,
		VideoID:      videoID,
		ThumbnailURL: ThumbnailURL(videoID),
		CreatedAt:    time.Now().UTC(),
	}

	data, err := recordstore.Encode(v)
	if err != nil {
		return nil, err
	}

	id, err := s.records.Create(ctx, collection, data)
	if err != nil {
		return nil, fmt.Errorf("create video record: %w", err)
	}
	v.ID = id
	return v, nil
}

func (s *Service) Update(ctx context.Context, id, title, sourceURL string) (*Video, error) {
	videoID := ExtractVideoID(sourceURL)
	if videoID == "" {
		return nil, ErrInvalidURL
	}

	partial := map[string]any{
		"title":         title,
		"source_url":    sourceURL,
		"video_id":      videoID,
		"thumbnail_url": ThumbnailURL(videoID),
	}
	if err := s.records.Update(ctx, collection, id, partial); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update video record: %w", err)
	}
	return s.get(ctx, id)
}

// Delete is idempotent: removing an id that is already gone succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete video record: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]Video, error) {
	docs, err := s.records.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(docs))
	for _, doc := range docs {
		var v Video
		if err := recordstore.Decode(doc, &v); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, nil
}

func (s *Service) get(ctx context.Context, id string) (*Video, error) {
	docs, err := s.records.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if doc.ID == id {
			var v Video
			if err := recordstore.Decode(doc, &v); err != nil {
				return nil, err
			}
			return &v, nil
		}
	}
	return nil, ErrNotFound
}
