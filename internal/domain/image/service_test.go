package image

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mediaconsole/internal/blobstore"
	"mediaconsole/internal/domain/content"
	"mediaconsole/internal/recordstore"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func fileHeader(t *testing.T, name string, payload []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func setupService(t *testing.T) (*Service, *blobstore.MemoryStore) {
	t.Helper()
	records, err := recordstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	blobs := blobstore.NewMemoryStore()
	return NewService(records, blobs), blobs
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	s, blobs := setupService(t)

	img, err := s.Create(ctx, fileHeader(t, "photo.png", pngBytes))
	require.NoError(t, err)
	assert.NotEmpty(t, img.ID)
	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, strings.HasPrefix(img.URL, "data:image/png;base64,"))
	assert.Equal(t, 1, blobs.Len())

	images, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, img.ID, images[0].ID)
	assert.NotEmpty(t, images[0].URL, "blob reference resolvable after create")
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	s, blobs := setupService(t)

	_, err := s.Create(ctx, fileHeader(t, "empty.png", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = s.Create(ctx, fileHeader(t, "notes.txt", []byte("just text")))
	assert.ErrorIs(t, err, ErrInvalidType)

	// nothing reached the stores
	assert.Equal(t, 0, blobs.Len())
	images, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)
}

type mockRecords struct {
	mock.Mock
}

func (m *mockRecords) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	args := m.Called(ctx, collection, data)
	return args.String(0), args.Error(1)
}

func (m *mockRecords) List(ctx context.Context, collection string) ([]recordstore.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recordstore.Document), args.Error(1)
}

func (m *mockRecords) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	args := m.Called(ctx, collection, id, partial)
	return args.Error(0)
}

func (m *mockRecords) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func TestCreateCompensatesOrphanBlob(t *testing.T) {
	ctx := context.Background()
	records := &mockRecords{}
	blobs := blobstore.NewMemoryStore()
	s := NewService(records, blobs)

	records.On("Create", mock.Anything, "images", mock.Anything).
		Return("", recordstore.ErrUnavailable)

	_, err := s.Create(ctx, fileHeader(t, "photo.png", pngBytes))
	require.Error(t, err)
	assert.True(t, content.IsTransient(err))

	// the uploaded blob did not stay behind as an orphan
	assert.Equal(t, 0, blobs.Len())
	records.AssertExpectations(t)
}

type unsignableStore struct {
	*blobstore.MemoryStore
}

func (u *unsignableStore) URL(ctx context.Context, key string) (string, error) {
	return "", blobstore.ErrUnavailable
}

func TestCreateSurvivesURLResolveFailure(t *testing.T) {
	ctx := context.Background()
	records, err := recordstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	blobs := &unsignableStore{MemoryStore: blobstore.NewMemoryStore()}
	s := NewService(records, blobs)

	// the blob and record are durable; a presign failure only costs the URL
	img, err := s.Create(ctx, fileHeader(t, "photo.png", pngBytes))
	require.NoError(t, err)
	assert.NotEmpty(t, img.ID)
	assert.NotEmpty(t, img.BlobKey)
	assert.Empty(t, img.URL)
}

func TestUpdateReplacesBlob(t *testing.T) {
	ctx := context.Background()
	s, blobs := setupService(t)

	img, err := s.Create(ctx, fileHeader(t, "before.png", pngBytes))
	require.NoError(t, err)
	oldKey := img.BlobKey

	updated, err := s.Update(ctx, img.ID, fileHeader(t, "after.png", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, img.ID, updated.ID)
	assert.NotEqual(t, oldKey, updated.BlobKey)

	// exactly one blob reachable from the record; the old one is gone
	assert.Equal(t, 1, blobs.Len())
	_, err = blobs.URL(ctx, oldKey)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestUpdateMissing(t *testing.T) {
	s, _ := setupService(t)
	_, err := s.Update(context.Background(), "12345", fileHeader(t, "x.png", pngBytes))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesBlobAndRecord(t *testing.T) {
	ctx := context.Background()
	s, blobs := setupService(t)

	img, err := s.Create(ctx, fileHeader(t, "photo.png", pngBytes))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, img.ID))

	images, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, images, "deleted id never listed again")

	_, err = blobs.URL(ctx, img.BlobKey)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	// repeated delete of an already-deleted id: no error
	require.NoError(t, s.Delete(ctx, img.ID))
}

func TestDeletePartialFailure(t *testing.T) {
	ctx := context.Background()
	records := &mockRecords{}
	blobs := blobstore.NewMemoryStore()
	s := NewService(records, blobs)

	doc := recordstore.Document{ID: "img-1", Data: map[string]any{
		"blob_key": "images/1_a.png",
	}}
	records.On("List", mock.Anything, "images").Return([]recordstore.Document{doc}, nil)
	records.On("Delete", mock.Anything, "images", "img-1").Return(recordstore.ErrUnavailable)

	err := s.Delete(ctx, "img-1")
	require.Error(t, err)

	var partial *content.PartialFailure
	require.True(t, errors.As(err, &partial))
	assert.Nil(t, partial.BlobErr)
	assert.Error(t, partial.RecordErr, "failed side named for retry")
}
