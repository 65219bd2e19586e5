package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// documentRow backs the database record store: one table of JSON documents
// keyed by collection, playing the role of a managed document store.
type documentRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Collection string    `gorm:"column:collection;index"`
	Data       string    `gorm:"column:data"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (documentRow) TableName() string { return "documents" }

// GormStore stores documents in a relational table (Postgres or SQLite)
// with adapter-generated UUID ids.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	row := documentRow{
		ID:         uuid.New().String(),
		Collection: collection,
		Data:       string(raw),
		CreatedAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create document: %w: %w", ErrUnavailable, err)
	}
	return row.ID, nil
}

func (s *GormStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w: %w", ErrUnavailable, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		var data map[string]any
		if err := json.Unmarshal([]byte(row.Data), &data); err != nil {
			return nil, fmt.Errorf("unmarshal document %s: %w", row.ID, err)
		}
		docs = append(docs, Document{ID: row.ID, Data: data})
	}
	return docs, nil
}

func (s *GormStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("load document: %w: %w", ErrUnavailable, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(row.Data), &data); err != nil {
		return fmt.Errorf("unmarshal document %s: %w", id, err)
	}
	for k, v := range partial {
		data[k] = v
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	err = s.db.WithContext(ctx).
		Model(&documentRow{}).
		Where("collection = ? AND id = ?", collection, id).
		Update("data", string(raw)).Error
	if err != nil {
		return fmt.Errorf("update document: %w: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&documentRow{}).Error
	if err != nil {
		return fmt.Errorf("delete document: %w: %w", ErrUnavailable, err)
	}
	return nil
}
