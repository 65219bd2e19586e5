package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes blobs under a base directory and serves them through a
// static URL prefix, the same way uploaded files are exposed in development.
type DiskStore struct {
	baseDir    string
	staticBase string
}

func NewDiskStore(baseDir, staticBase string) *DiskStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if staticBase == "" {
		staticBase = "/static/uploads"
	}
	return &DiskStore{baseDir: baseDir, staticBase: staticBase}
}

// BaseDir is the directory the static file server must mount.
func (d *DiskStore) BaseDir() string { return d.baseDir }

// StaticBase is the URL prefix the static file server is mounted on.
func (d *DiskStore) StaticBase() string { return d.staticBase }

func (d *DiskStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) error {
	absPath := filepath.Join(d.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("create blob file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("write blob file: %w", err)
	}
	return nil
}

func (d *DiskStore) URL(ctx context.Context, key string) (string, error) {
	return d.staticBase + "/" + strings.ReplaceAll(key, "\\", "/"), nil
}

func (d *DiskStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(d.baseDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob file: %w", err)
	}
	return nil
}
