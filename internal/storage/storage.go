// Package storage 提供购物车等整体序列化数据的持久化后端。
//
// 所有后端都是“整键覆盖”语义：不加锁、不做版本号，多个写者并发时后写者胜出。
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/repository"
)

// Storage 键值持久化接口
type Storage interface {
	// Get 读取键，不存在时 found=false
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set 整体覆盖写入
	Set(ctx context.Context, key string, value []byte) error
}

// New 按配置名创建后端
func New(kind string, repo repository.StorageEntryRepository) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case constants.CartStorageMemory:
		return NewMemory(), nil
	case "", constants.CartStorageDatabase:
		if repo == nil {
			return nil, fmt.Errorf("database storage requires a repository")
		}
		return NewDatabase(repo), nil
	case constants.CartStorageRedis:
		return NewRedis(), nil
	default:
		return nil, fmt.Errorf("unsupported cart storage: %s", kind)
	}
}

// Namespaced 为每个键加上命名空间前缀，逻辑键保持不变
type Namespaced struct {
	inner     Storage
	namespace string
}

// WithNamespace 包装后端，namespace 为空时原样返回
func WithNamespace(inner Storage, namespace string) Storage {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return inner
	}
	return &Namespaced{inner: inner, namespace: namespace}
}

// Get 读取
func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.inner.Get(ctx, n.physicalKey(key))
}

// Set 写入
func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.physicalKey(key), value)
}

func (n *Namespaced) physicalKey(key string) string {
	return n.namespace + ":" + key
}
