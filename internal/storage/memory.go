package storage

import (
	"context"
	"sync"
)

// Memory 进程内后端，重启后丢失
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory 创建内存后端
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get 读取
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set 写入
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}
