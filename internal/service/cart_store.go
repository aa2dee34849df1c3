package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/numeric"
	"github.com/buildmart-next/internal/storage"

	"github.com/shopspring/decimal"
)

const cartPersistTimeout = 5 * time.Second

// CartStore 购物车状态
//
// 每次变更后同步把完整列表写回存储；读写失败只记日志，不向调用方返回错误。
// 必须通过 NewCartStore 创建，零值或 nil 调用任意方法都会 panic。
type CartStore struct {
	mu      sync.Mutex
	storage storage.Storage
	key     string
	items   []models.CartItem
	ready   bool
}

// NewCartStore 创建购物车并从存储原样加载已有内容
func NewCartStore(ctx context.Context, st storage.Storage, key string) *CartStore {
	if st == nil {
		panic(ErrStoreNotInitialized)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = constants.CartStorageKey
	}
	s := &CartStore{
		storage: st,
		key:     key,
		items:   []models.CartItem{},
		ready:   true,
	}
	s.load(ctx)
	return s
}

func (s *CartStore) mustReady() {
	if s == nil || !s.ready {
		panic(ErrStoreNotInitialized)
	}
}

func (s *CartStore) load(ctx context.Context) {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		logger.Warnw("cart_load_failed", "key", s.key, "error", err)
		return
	}
	if !found || len(raw) == 0 {
		return
	}
	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warnw("cart_load_decode_failed", "key", s.key, "error", err)
		return
	}
	if items != nil {
		s.items = items
	}
}

// persist 调用方持有锁
func (s *CartStore) persist() {
	payload, err := json.Marshal(s.items)
	if err != nil {
		logger.Warnw("cart_persist_encode_failed", "key", s.key, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cartPersistTimeout)
	defer cancel()
	if err := s.storage.Set(ctx, s.key, payload); err != nil {
		logger.Warnw("cart_persist_failed", "key", s.key, "error", err)
	}
}

func (s *CartStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddToCart 加入购物车，已存在同 ID 的项时累加数量
func (s *CartStore) AddToCart(item models.CartItem, quantity int) {
	s.mustReady()
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > numeric.MaxQuantity {
		quantity = numeric.MaxQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(item.ID); idx >= 0 {
		current, ok := numeric.ParseQuantity(s.items[idx].Quantity)
		if !ok {
			logger.Warnw("cart_quantity_unparsable", "item_id", item.ID, "raw", s.items[idx].Quantity.Raw())
			current = 0
		}
		merged := current + quantity
		if current > numeric.MaxQuantity-quantity {
			logger.Warnw("cart_quantity_saturated", "item_id", item.ID, "current", current, "added", quantity)
			merged = numeric.MaxQuantity
		}
		s.items[idx].Quantity = numeric.Int(merged)
	} else {
		item.Quantity = numeric.Int(quantity)
		s.items = append(s.items, item)
	}
	s.persist()
}

// RemoveFromCart 移除指定项，不存在时为空操作
func (s *CartStore) RemoveFromCart(id string) bool {
	s.mustReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.persist()
	return true
}

// UpdateQuantity 设置数量（向下取整），非法或小于 1 时保持原值
func (s *CartStore) UpdateQuantity(id string, quantity numeric.Value) bool {
	s.mustReady()
	n, ok := numeric.ParseQuantity(quantity)
	if !ok || n < 1 {
		logger.Debugw("cart_update_quantity_ignored", "item_id", id, "raw", quantity.Raw())
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.items[idx].Quantity = numeric.Int(n)
	s.persist()
	return true
}

// ClearCart 清空购物车
func (s *CartStore) ClearCart() {
	s.mustReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []models.CartItem{}
	s.persist()
}

// CartTotal 计算合计，无法解析的项按 0 计
func (s *CartStore) CartTotal() models.Money {
	s.mustReady()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// totalLocked 调用方持有锁
func (s *CartStore) totalLocked() models.Money {
	total := decimal.Zero
	for _, item := range s.items {
		price, ok := numeric.ParsePrice(item.Price)
		if !ok {
			logger.Warnw("cart_item_price_invalid", "item_id", item.ID, "raw", item.Price.Raw())
			continue
		}
		qty, ok := numeric.CountableQuantity(item.Quantity)
		if !ok {
			logger.Warnw("cart_item_quantity_invalid", "item_id", item.ID, "raw", item.Quantity.Raw())
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return models.NewMoneyFromDecimal(total)
}

// TakeItems 在同一把锁内取出全部项与合计并清空购物车，购物车为空时不做任何写入
func (s *CartStore) TakeItems() ([]models.CartItem, models.Money) {
	s.mustReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return nil, models.Money{}
	}
	items := s.items
	total := s.totalLocked()
	s.items = []models.CartItem{}
	s.persist()
	return items, total
}

// ItemCount 数量合计
func (s *CartStore) ItemCount() int {
	s.mustReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		if qty, ok := numeric.CountableQuantity(item.Quantity); ok {
			count += qty
		}
	}
	return count
}

// IsItemInCart 是否已在购物车
func (s *CartStore) IsItemInCart(id string) bool {
	s.mustReady()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Items 按加入顺序返回副本
func (s *CartStore) Items() []models.CartItem {
	s.mustReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}
