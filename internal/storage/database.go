package storage

import (
	"context"

	"github.com/buildmart-next/internal/repository"
)

// Database 基于 storage_entries 表的后端
type Database struct {
	repo repository.StorageEntryRepository
}

// NewDatabase 创建数据库后端
func NewDatabase(repo repository.StorageEntryRepository) *Database {
	return &Database{repo: repo}
}

// Get 读取
func (d *Database) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := d.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		return nil, false, nil
	}
	return []byte(entry.Value), true, nil
}

// Set 写入
func (d *Database) Set(ctx context.Context, key string, value []byte) error {
	return d.repo.Upsert(ctx, key, string(value))
}
