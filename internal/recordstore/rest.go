package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RESTStore talks to a JSON resource-collection backend of the mock-API
// kind: POST /{collection} returns the created resource with its id,
// PATCH /{collection}/{id} partial-updates, DELETE removes.
type RESTStore struct {
	baseURL string
	client  *http.Client
}

func NewRESTStore(baseURL string, client *http.Client) *RESTStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (s *RESTStore) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	return resp, nil
}

// id values come back as numbers from some mock backends and as strings
// from others.
func stringID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	case json.Number:
		return id.String()
	default:
		return fmt.Sprintf("%v", id)
	}
}

func (s *RESTStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	resp, err := s.do(ctx, http.MethodPost, "/"+collection, data)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("create %s: %w: status %d", collection, ErrUnavailable, resp.StatusCode)
	}

	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode created %s: %w", collection, err)
	}
	id, ok := created["id"]
	if !ok {
		return "", fmt.Errorf("create %s: backend returned no id", collection)
	}
	return stringID(id), nil
}

func (s *RESTStore) List(ctx context.Context, collection string) ([]Document, error) {
	resp, err := s.do(ctx, http.MethodGet, "/"+collection, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list %s: %w: status %d", collection, ErrUnavailable, resp.StatusCode)
	}

	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", collection, err)
	}

	docs := make([]Document, 0, len(items))
	for _, item := range items {
		id, ok := item["id"]
		if !ok {
			continue
		}
		data := make(map[string]any, len(item))
		for k, v := range item {
			if k != "id" {
				data[k] = v
			}
		}
		docs = append(docs, Document{ID: stringID(id), Data: data})
	}
	return docs, nil
}

func (s *RESTStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	resp, err := s.do(ctx, http.MethodPatch, "/"+collection+"/"+id, partial)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("update %s/%s: %w: status %d", collection, id, ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (s *RESTStore) Delete(ctx context.Context, collection, id string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/"+collection+"/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// already gone counts as deleted
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("delete %s/%s: %w: status %d", collection, id, ErrUnavailable, resp.StatusCode)
	}
	return nil
}
