package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// FileStore keeps each collection in one JSON file under a data directory,
// the server-side analog of a browser's key-value storage. In this mode the
// store is the source of truth and ids are client-generated: a millisecond
// timestamp bumped monotonically so rapid submissions in the same
// millisecond still get distinct ids.
type FileStore struct {
	dir string

	mu     sync.Mutex
	lastID int64
}

type fileDocument struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) load(collection string) ([]fileDocument, error) {
	raw, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w: %w", collection, ErrUnavailable, err)
	}

	var docs []fileDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", collection, err)
	}
	return docs, nil
}

func (s *FileStore) save(collection string, docs []fileDocument) error {
	raw, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", collection, err)
	}

	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write collection %s: %w: %w", collection, ErrUnavailable, err)
	}
	if err := os.Rename(tmp, s.path(collection)); err != nil {
		return fmt.Errorf("write collection %s: %w: %w", collection, ErrUnavailable, err)
	}
	return nil
}

func (s *FileStore) nextID() string {
	ts := time.Now().UnixMilli()
	if ts <= s.lastID {
		ts = s.lastID + 1
	}
	s.lastID = ts
	return strconv.FormatInt(ts, 10)
}

func (s *FileStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(collection)
	if err != nil {
		return "", err
	}

	id := s.nextID()
	docs = append(docs, fileDocument{ID: id, Data: data})
	if err := s.save(collection, docs); err != nil {
		return "", err
	}
	return id, nil
}

func (s *FileStore) List(ctx context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(collection)
	if err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, Document{ID: d.ID, Data: d.Data})
	}
	return out, nil
}

func (s *FileStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(collection)
	if err != nil {
		return err
	}

	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		if docs[i].Data == nil {
			docs[i].Data = make(map[string]any, len(partial))
		}
		for k, v := range partial {
			docs[i].Data[k] = v
		}
		return s.save(collection, docs)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *FileStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(collection)
	if err != nil {
		return err
	}

	kept := docs[:0]
	for _, d := range docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(docs) {
		return nil // already gone
	}
	return s.save(collection, kept)
}
