package service

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/storage"
)

var cartSessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// NormalizeCartSession 规范化购物车会话标识，空值回退到默认会话
func NormalizeCartSession(session string) (string, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return constants.CartSessionDefault, nil
	}
	if !cartSessionPattern.MatchString(session) {
		return "", ErrCartSessionInvalid
	}
	return session, nil
}

// CartRegistry 按会话懒加载购物车，每个会话的存储键带会话前缀
type CartRegistry struct {
	mu      sync.Mutex
	storage storage.Storage
	key     string
	carts   map[string]*CartStore
}

// NewCartRegistry 创建购物车注册表
func NewCartRegistry(st storage.Storage, key string) *CartRegistry {
	if st == nil {
		panic(ErrStoreNotInitialized)
	}
	return &CartRegistry{
		storage: st,
		key:     key,
		carts:   make(map[string]*CartStore),
	}
}

// Cart 获取会话对应的购物车，首次访问时从存储加载
func (r *CartRegistry) Cart(ctx context.Context, session string) (*CartStore, error) {
	if r == nil || r.carts == nil {
		panic(ErrStoreNotInitialized)
	}
	normalized, err := NormalizeCartSession(session)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart, ok := r.carts[normalized]; ok {
		return cart, nil
	}
	cart := NewCartStore(ctx, storage.WithNamespace(r.storage, normalized), r.key)
	r.carts[normalized] = cart
	return cart, nil
}
