package blobstore

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestS3Store(t *testing.T, opts S3Options) *S3Store {
	t.Helper()
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	opts.AccessKey = "test-access"
	opts.SecretKey = "test-secret"

	store, err := NewS3Store(context.Background(), opts)
	require.NoError(t, err)
	return store
}

func TestS3URLPublicBase(t *testing.T) {
	store := newTestS3Store(t, S3Options{
		Bucket:        "media",
		PublicBaseURL: "https://cdn.example.com/media/",
	})

	got, err := store.URL(context.Background(), "images/1_photo.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/images/1_photo.png", got)
}

func TestS3URLPresigned(t *testing.T) {
	store := newTestS3Store(t, S3Options{
		Bucket:  "media",
		SignTTL: time.Hour,
	})

	raw, err := store.URL(context.Background(), "pdfs/1_book.pdf")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u.Path, "/pdfs/1_book.pdf"))
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestS3URLPresignedRotatesPerWindow(t *testing.T) {
	store := newTestS3Store(t, S3Options{
		Bucket:  "media",
		SignTTL: time.Hour,
	})
	ctx := context.Background()

	first, err := store.URL(ctx, "pdfs/1_book.pdf")
	require.NoError(t, err)

	// signatures are dated to the second; cross a boundary and presign again
	time.Sleep(1100 * time.Millisecond)

	second, err := store.URL(ctx, "pdfs/1_book.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "each resolve is a fresh signing window")
}
