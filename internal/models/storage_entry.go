package models

import "time"

// StorageEntry 持久化键值（购物车等整体序列化后按键存储）
type StorageEntry struct {
	Key       string    `gorm:"column:storage_key;primarykey;type:varchar(191)" json:"key"` // 存储键
	Value     string    `gorm:"type:text;not null" json:"value"`                            // 序列化内容
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (StorageEntry) TableName() string {
	return "storage_entries"
}
