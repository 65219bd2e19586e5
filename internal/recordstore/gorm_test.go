package recordstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediaconsole/internal/database"
)

func setupGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestGormStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := setupGormStore(t)

	id, err := store.Create(ctx, "books", map[string]any{
		"title":       "Go basics",
		"description": "an introduction",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	docs, err := store.List(ctx, "books")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.Equal(t, "Go basics", docs[0].Data["title"])

	err = store.Update(ctx, "books", id, map[string]any{"title": "Go basics, 2nd ed."})
	require.NoError(t, err)

	docs, err = store.List(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, "Go basics, 2nd ed.", docs[0].Data["title"])
	assert.Equal(t, "an introduction", docs[0].Data["description"])

	require.NoError(t, store.Delete(ctx, "books", id))
	docs, err = store.List(ctx, "books")
	require.NoError(t, err)
	assert.Empty(t, docs)

	require.NoError(t, store.Delete(ctx, "books", id))
}

func TestGormStoreUpdateMissing(t *testing.T) {
	store := setupGormStore(t)
	err := store.Update(context.Background(), "books", "no-such-id", map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreGeneratesIDs(t *testing.T) {
	ctx := context.Background()
	store := setupGormStore(t)

	a, err := store.Create(ctx, "books", map[string]any{"title": "a"})
	require.NoError(t, err)
	b, err := store.Create(ctx, "books", map[string]any{"title": "b"})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
