package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teksi-laju/service-booking/internal/domain"
)

// BlobModel is the GORM model for the booking_store table: one JSON blob per
// logical key.
type BlobModel struct {
	Key       string          `gorm:"primaryKey;size:64;column:store_key"`
	Value     json.RawMessage `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BlobModel) TableName() string {
	return "booking_store"
}

// GormStore is the Postgres-backed KeyValueStore used for the durable
// confirmed-booking list.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get retrieves the value stored at key.
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var model BlobModel
	err := s.db.WithContext(ctx).Where("store_key = ?", key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domain.NewPersistenceError(fmt.Sprintf("load %s: %v", key, err))
	}
	return model.Value, true, nil
}

// Set upserts the value stored at key.
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	model := BlobModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("save %s: %v", key, err))
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("store_key = ?", key).Delete(&BlobModel{}).Error
	if err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("delete %s: %v", key, err))
	}
	return nil
}
