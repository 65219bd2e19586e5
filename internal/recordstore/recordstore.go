package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable wraps network/backend failures; the caller may retry
	// by resubmitting.
	ErrUnavailable = errors.New("record backend unavailable")
)

// Document is one stored record: an adapter-assigned id plus a schemaless
// JSON object.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the record half of the persistence layer: schemaless JSON
// documents grouped into named collections.
//
// Create assigns the id (the caller never supplies one). Update is a
// partial merge: only the supplied fields change. List materializes the
// whole collection in insertion order; collections are small administrative
// catalogs, so no pagination and no silent truncation. Delete of a missing
// id is a no-op; Update of a missing id returns ErrNotFound.
type Store interface {
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Update(ctx context.Context, collection, id string, partial map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// Encode converts a typed record into a document body via its json tags.
// The id field is stripped: ids live outside the document body.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	delete(data, "id")
	return data, nil
}

// Decode fills a typed record from a document, injecting the document id
// under the "id" json key.
func Decode(doc Document, v any) error {
	data := make(map[string]any, len(doc.Data)+1)
	for k, val := range doc.Data {
		data[k] = val
	}
	data["id"] = doc.ID

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
