package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/models"
)

// UpdateOutcome 订单更新结果
type UpdateOutcome int

const (
	// OutcomeNotFound 订单不存在，未做任何修改
	OutcomeNotFound UpdateOutcome = iota
	// OutcomeUnchanged 跟踪字段均未变化，丢弃本次写入
	OutcomeUnchanged
	// OutcomeUpdated 已写入
	OutcomeUpdated
	// OutcomeRejected 状态流转被策略拒绝
	OutcomeRejected
)

// String 返回结果名称
func (o UpdateOutcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUpdated:
		return "updated"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

// UpdateResult 订单更新结果
type UpdateResult struct {
	Outcome UpdateOutcome
	Order   models.Order // NotFound 时为零值，其余为更新后（或原有）订单快照
	Changed []string
	Err     error
}

// OrderNotifier 订单事件通知
type OrderNotifier interface {
	OrderCreated(order models.Order)
	OrderUpdated(order models.Order, changed []string)
}

// OrderStoreOptions 订单存储选项
type OrderStoreOptions struct {
	Policy   TransitionPolicy
	Notifier OrderNotifier
	Now      func() time.Time
}

// OrderStore 订单状态（仅内存）
//
// 返回给调用方的订单均为深拷贝快照。必须通过 NewOrderStore 创建。
type OrderStore struct {
	mu       sync.RWMutex
	orders   []models.Order
	index    map[string]int
	revision uint64
	policy   TransitionPolicy
	notifier OrderNotifier
	now      func() time.Time
}

// NewOrderStore 创建订单存储
func NewOrderStore(opts OrderStoreOptions) *OrderStore {
	policy := opts.Policy
	if policy == nil {
		policy = PermissivePolicy{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &OrderStore{
		orders:   []models.Order{},
		index:    make(map[string]int),
		policy:   policy,
		notifier: opts.Notifier,
		now:      now,
	}
}

func (s *OrderStore) mustReady() {
	if s == nil || s.index == nil {
		panic(ErrStoreNotInitialized)
	}
}

// AllowsTransition 按当前策略判断流转是否允许，to 为空表示保持原状态
func (s *OrderStore) AllowsTransition(from, to string) bool {
	s.mustReady()
	if strings.TrimSpace(to) == "" {
		to = from
	}
	return s.policy.Allow(from, to)
}

// AddOrder 创建订单：默认值 -> 调用方字段 -> 强制字段
func (s *OrderStore) AddOrder(partial models.OrderDraft) models.Order {
	s.mustReady()
	s.mu.Lock()

	now := s.now()
	order := models.Order{
		Items:         []models.OrderItem{},
		Status:        constants.OrderStatusPending,
		PaymentStatus: constants.PaymentStatusPending,
		OrderDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyOrderDraft(&order, partial)

	if order.ID == "" {
		order.ID = s.nextOrderID(now)
	} else if _, exists := s.index[order.ID]; exists {
		logger.Warnw("order_create_duplicate_id", "order_id", order.ID)
		order.ID = s.nextOrderID(now)
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber(now)
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}

	s.index[order.ID] = len(s.orders)
	s.orders = append(s.orders, order)
	s.revision++
	snapshot := order.Clone()
	s.mu.Unlock()

	logger.Infow("order_created",
		"order_id", snapshot.ID,
		"order_number", snapshot.OrderNumber,
		"total", snapshot.Total.String(),
		"items", len(snapshot.Items),
	)
	if s.notifier != nil {
		s.notifier.OrderCreated(snapshot)
	}
	return snapshot
}

func applyOrderDraft(order *models.Order, partial models.OrderDraft) {
	if v := strings.TrimSpace(partial.ID); v != "" {
		order.ID = v
	}
	if v := strings.TrimSpace(partial.OrderNumber); v != "" {
		order.OrderNumber = v
	}
	if partial.Items != nil {
		order.Items = models.CloneOrderItems(partial.Items)
	}
	if v := strings.TrimSpace(partial.Status); v != "" {
		order.Status = v
	}
	if v := strings.TrimSpace(partial.PaymentStatus); v != "" {
		order.PaymentStatus = v
	}
	order.Subtotal = partial.Subtotal
	order.DeliveryCharge = partial.DeliveryCharge
	order.Tax = partial.Tax
	order.Total = partial.Total
	order.AdvancePaid = partial.AdvancePaid
	order.DueAmount = partial.DueAmount
	order.IsAdvancePaid = partial.IsAdvancePaid
	order.IsDuePaid = partial.IsDuePaid
	order.Address = partial.Address
	order.Phone = partial.Phone
	order.ShippingAddress = partial.ShippingAddress
	order.TrackingNumber = partial.TrackingNumber
	order.Carrier = partial.Carrier
	if !partial.OrderDate.IsZero() {
		order.OrderDate = partial.OrderDate
	}
}

// UpdateOrderStatus 合并更新并对账支付字段，跟踪字段无变化时不写入
func (s *OrderStore) UpdateOrderStatus(id, status string, updates models.OrderUpdate) UpdateResult {
	s.mustReady()
	s.mu.Lock()

	idx, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		logger.Infow("order_update_skip_not_found", "order_id", id, "status", status)
		return UpdateResult{Outcome: OutcomeNotFound, Err: ErrOrderNotFound}
	}
	existing := s.orders[idx]
	candidate := mergeOrderUpdate(existing, status, updates, s.now())
	reconcilePayment(&candidate, updates)

	if !s.policy.Allow(existing.Status, candidate.Status) {
		s.mu.Unlock()
		logger.Warnw("order_update_transition_rejected",
			"order_id", id,
			"from", existing.Status,
			"to", candidate.Status,
		)
		return UpdateResult{Outcome: OutcomeRejected, Order: existing.Clone(), Err: ErrOrderStatusInvalid}
	}

	changed := diffTrackedFields(existing, candidate)
	if len(changed) == 0 {
		s.mu.Unlock()
		logger.Debugw("order_update_skip_unchanged", "order_id", id, "status", candidate.Status)
		return UpdateResult{Outcome: OutcomeUnchanged, Order: existing.Clone()}
	}

	s.orders[idx] = candidate
	s.revision++
	snapshot := candidate.Clone()
	s.mu.Unlock()

	logger.Infow("order_updated",
		"order_id", id,
		"status", snapshot.Status,
		"payment_status", snapshot.PaymentStatus,
		"changed", changed,
	)
	if s.notifier != nil {
		s.notifier.OrderUpdated(snapshot, changed)
	}
	return UpdateResult{Outcome: OutcomeUpdated, Order: snapshot, Changed: changed}
}

func mergeOrderUpdate(existing models.Order, status string, updates models.OrderUpdate, now time.Time) models.Order {
	merged := existing.Clone()

	if updates.Subtotal != nil {
		merged.Subtotal = *updates.Subtotal
	}
	if updates.DeliveryCharge != nil {
		merged.DeliveryCharge = *updates.DeliveryCharge
	}
	if updates.Tax != nil {
		merged.Tax = *updates.Tax
	}
	if updates.Total != nil {
		merged.Total = *updates.Total
	}
	if updates.Address != nil {
		merged.Address = *updates.Address
	}
	if updates.Phone != nil {
		merged.Phone = *updates.Phone
	}

	if v := strings.TrimSpace(status); v != "" {
		merged.Status = v
	}
	if updates.OrderNumber != "" {
		merged.OrderNumber = updates.OrderNumber
	}
	if updates.PaymentStatus != "" {
		merged.PaymentStatus = updates.PaymentStatus
	}
	if updates.AdvancePaid != nil {
		merged.AdvancePaid = *updates.AdvancePaid
	}
	if updates.DueAmount != nil {
		merged.DueAmount = *updates.DueAmount
	}
	if updates.IsAdvancePaid != nil {
		merged.IsAdvancePaid = *updates.IsAdvancePaid
	}
	if updates.IsDuePaid != nil {
		merged.IsDuePaid = *updates.IsDuePaid
	}
	if updates.Items != nil {
		merged.Items = models.CloneOrderItems(updates.Items)
	}
	if updates.ShippingAddress != nil {
		merged.ShippingAddress = *updates.ShippingAddress
	}
	if updates.TrackingNumber != nil {
		merged.TrackingNumber = *updates.TrackingNumber
	}
	if updates.Carrier != nil {
		merged.Carrier = *updates.Carrier
	}
	merged.UpdatedAt = now
	return merged
}

// reconcilePayment 结清优先于部分支付，均未命中时保留合并结果
func reconcilePayment(order *models.Order, updates models.OrderUpdate) {
	duePaid := updates.IsDuePaid != nil && *updates.IsDuePaid
	advancePaid := updates.IsAdvancePaid != nil && *updates.IsAdvancePaid
	switch {
	case updates.PaymentStatus == constants.PaymentStatusPaid || duePaid:
		order.IsDuePaid = true
		order.IsAdvancePaid = true
		order.PaymentStatus = constants.PaymentStatusPaid
	case updates.PaymentStatus == constants.PaymentStatusPartiallyPaid || advancePaid:
		order.PaymentStatus = constants.PaymentStatusPartiallyPaid
	}
}

// diffTrackedFields 返回发生变化的跟踪字段，updatedAt 不参与比较
func diffTrackedFields(a, b models.Order) []string {
	var changed []string
	if a.Status != b.Status {
		changed = append(changed, "status")
	}
	if !a.AdvancePaid.Equal(b.AdvancePaid.Decimal) {
		changed = append(changed, "advancePaid")
	}
	if !a.DueAmount.Equal(b.DueAmount.Decimal) {
		changed = append(changed, "dueAmount")
	}
	if a.IsAdvancePaid != b.IsAdvancePaid {
		changed = append(changed, "isAdvancePaid")
	}
	if a.IsDuePaid != b.IsDuePaid {
		changed = append(changed, "isDuePaid")
	}
	if a.PaymentStatus != b.PaymentStatus {
		changed = append(changed, "paymentStatus")
	}
	if a.TrackingNumber != b.TrackingNumber {
		changed = append(changed, "trackingNumber")
	}
	if a.Carrier != b.Carrier {
		changed = append(changed, "carrier")
	}
	if a.ShippingAddress != b.ShippingAddress {
		changed = append(changed, "shippingAddress")
	}
	if !models.OrderItemsEqual(a.Items, b.Items) {
		changed = append(changed, "items")
	}
	return changed
}

// GetOrder 按 ID 查找，返回快照
func (s *OrderStore) GetOrder(id string) (models.Order, bool) {
	s.mustReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[id]
	if !ok {
		return models.Order{}, false
	}
	return s.orders[idx].Clone(), true
}

// Orders 按创建顺序返回全部订单快照
func (s *OrderStore) Orders() []models.Order {
	s.mustReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	for i := range s.orders {
		out[i] = s.orders[i].Clone()
	}
	return out
}

// Revision 订单列表版本号，仅在实际写入时递增
func (s *OrderStore) Revision() uint64 {
	s.mustReady()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// nextOrderID 基于毫秒时间戳生成 ID，冲突时追加序号，调用方持有锁
func (s *OrderStore) nextOrderID(now time.Time) string {
	base := strconv.FormatInt(now.UnixMilli(), 10)
	id := base
	for seq := 1; ; seq++ {
		if _, exists := s.index[id]; !exists {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, seq)
	}
}

func generateOrderNumber(now time.Time) string {
	return fmt.Sprintf("BM%s%s", now.Format("20060102150405"), randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(strconv.FormatInt(n.Int64(), 10))
	}
	return b.String()
}
