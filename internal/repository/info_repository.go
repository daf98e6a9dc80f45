package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/internal/model"
)

// InfoRepository defines persistence for a key/value info table.
type InfoRepository interface {
	All(ctx context.Context) ([]model.InfoEntry, error)
	Upsert(ctx context.Context, key, value string) error
}

type infoModel interface {
	model.AboutInfo | model.ContactInfo
}

type infoRepository[T infoModel] struct {
	db *gorm.DB
}

// NewAboutInfoRepository creates the repository for the about page fields.
func NewAboutInfoRepository(db *gorm.DB) InfoRepository {
	return &infoRepository[model.AboutInfo]{db: db}
}

// NewContactInfoRepository creates the repository for the contact page fields.
func NewContactInfoRepository(db *gorm.DB) InfoRepository {
	return &infoRepository[model.ContactInfo]{db: db}
}

// All returns every entry in insertion order.
func (r *infoRepository[T]) All(ctx context.Context) ([]model.InfoEntry, error) {
	entries := []model.InfoEntry{}
	if err := r.db.WithContext(ctx).Model(new(T)).
		Select("info_key", "value").
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert inserts the key or, when it already exists, updates its value in a
// single statement keyed on the unique info_key index.
func (r *infoRepository[T]) Upsert(ctx context.Context, key, value string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(new(T)).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "info_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(map[string]interface{}{
			"id":         uuid.NewString(),
			"info_key":   key,
			"value":      value,
			"created_at": now,
			"updated_at": now,
		}).Error
}
