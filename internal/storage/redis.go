package storage

import (
	"context"
	"errors"

	"github.com/buildmart-next/internal/cache"
)

// ErrRedisDisabled Redis 未启用
var ErrRedisDisabled = errors.New("redis storage is not enabled")

// Redis 基于全局 Redis 客户端的后端，键不过期
type Redis struct{}

// NewRedis 创建 Redis 后端
func NewRedis() *Redis {
	return &Redis{}
}

// Get 读取
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !cache.Enabled() {
		return nil, false, ErrRedisDisabled
	}
	return cache.GetRaw(ctx, key)
}

// Set 写入
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if !cache.Enabled() {
		return ErrRedisDisabled
	}
	return cache.SetRaw(ctx, key, value, 0)
}
