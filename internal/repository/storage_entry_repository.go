package repository

import (
	"context"
	"errors"
	"time"

	"github.com/buildmart-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageEntryRepository 键值存储数据访问接口
type StorageEntryRepository interface {
	GetByKey(ctx context.Context, key string) (*models.StorageEntry, error)
	Upsert(ctx context.Context, key, value string) error
}

// GormStorageEntryRepository GORM 实现
type GormStorageEntryRepository struct {
	db *gorm.DB
}

// NewStorageEntryRepository 创建键值存储仓库
func NewStorageEntryRepository(db *gorm.DB) *GormStorageEntryRepository {
	return &GormStorageEntryRepository{db: db}
}

// GetByKey 按键读取，不存在返回 nil
func (r *GormStorageEntryRepository) GetByKey(ctx context.Context, key string) (*models.StorageEntry, error) {
	var entry models.StorageEntry
	if err := r.db.WithContext(ctx).Where("storage_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert 整体覆盖写入，后写者胜出
func (r *GormStorageEntryRepository) Upsert(ctx context.Context, key, value string) error {
	entry := models.StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}
