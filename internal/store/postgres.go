package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// collectionRecord maps one collection key to its JSON blob. The table
// deliberately mirrors a browser key/value store: one row per key, whole blob
// per write.
type collectionRecord struct {
	Key       string         `gorm:"primaryKey;size:255"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (collectionRecord) TableName() string {
	return "collections"
}

// PostgresStore implements Store on a single Postgres table via GORM.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the collections table.
func (s *PostgresStore) Migrate() error {
	return s.db.AutoMigrate(&collectionRecord{})
}

func (s *PostgresStore) Read(ctx context.Context, key string) ([]byte, error) {
	var rec collectionRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return []byte(rec.Data), nil
}

func (s *PostgresStore) Write(ctx context.Context, key string, data []byte) error {
	rec := collectionRecord{
		Key:       key,
		Data:      datatypes.JSON(data),
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&collectionRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&collectionRecord{}).
		Where("key LIKE ?", prefix+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collection keys: %w", err)
	}
	return keys, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
