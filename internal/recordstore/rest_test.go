package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCollectionServer mimics a JSON resource-collection mock backend:
// numeric server-assigned ids, PATCH partial updates.
type mockCollectionServer struct {
	nextID int
	items  []map[string]any
}

func (m *mockCollectionServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

		switch {
		case r.Method == http.MethodGet && len(parts) == 1:
			json.NewEncoder(w).Encode(m.items)

		case r.Method == http.MethodPost && len(parts) == 1:
			var data map[string]any
			json.NewDecoder(r.Body).Decode(&data)
			m.nextID++
			data["id"] = m.nextID
			m.items = append(m.items, data)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(data)

		case r.Method == http.MethodPatch && len(parts) == 2:
			for _, item := range m.items {
				if fmt.Sprint(item["id"]) == parts[1] {
					var partial map[string]any
					json.NewDecoder(r.Body).Decode(&partial)
					for k, v := range partial {
						item[k] = v
					}
					json.NewEncoder(w).Encode(item)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)

		case r.Method == http.MethodDelete && len(parts) == 2:
			for i, item := range m.items {
				if fmt.Sprint(item["id"]) == parts[1] {
					m.items = append(m.items[:i], m.items[i+1:]...)
					w.WriteHeader(http.StatusOK)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)

		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func TestRESTStoreCRUD(t *testing.T) {
	ctx := context.Background()
	mock := &mockCollectionServer{}
	srv := httptest.NewServer(mock.handler())
	defer srv.Close()

	store := NewRESTStore(srv.URL, srv.Client())

	id, err := store.Create(ctx, "videos", map[string]any{"title": "Lesson 1"})
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	docs, err := store.List(ctx, "videos")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "1", docs[0].ID)
	assert.Equal(t, "Lesson 1", docs[0].Data["title"])

	err = store.Update(ctx, "videos", id, map[string]any{"title": "Lesson 1 (updated)"})
	require.NoError(t, err)

	docs, err = store.List(ctx, "videos")
	require.NoError(t, err)
	assert.Equal(t, "Lesson 1 (updated)", docs[0].Data["title"])

	require.NoError(t, store.Delete(ctx, "videos", id))

	// deleting again: backend says 404, adapter says fine
	require.NoError(t, store.Delete(ctx, "videos", id))

	docs, err = store.List(ctx, "videos")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRESTStoreUpdateMissing(t *testing.T) {
	mock := &mockCollectionServer{}
	srv := httptest.NewServer(mock.handler())
	defer srv.Close()

	store := NewRESTStore(srv.URL, srv.Client())
	err := store.Update(context.Background(), "videos", "99", map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRESTStoreUnreachable(t *testing.T) {
	store := NewRESTStore("http://127.0.0.1:1", nil)
	_, err := store.List(context.Background(), "videos")
	assert.ErrorIs(t, err, ErrUnavailable)
}
