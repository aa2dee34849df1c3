package service

import (
	"strings"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/models"
)

// ProgressStages 进度条使用的阶段列表
//
// 不包含 verified / paid / cancelled，这些状态在进度条上显示为第 0 步。
var ProgressStages = []string{
	constants.OrderStatusPending,
	constants.OrderStatusProcessing,
	constants.OrderStatusShipped,
	constants.OrderStatusOutForDelivery,
	constants.OrderStatusDelivered,
}

// orderStatusSequence 完整的生命周期顺序，cancelled 单独处理
var orderStatusSequence = []string{
	constants.OrderStatusPending,
	constants.OrderStatusVerified,
	constants.OrderStatusPaid,
	constants.OrderStatusProcessing,
	constants.OrderStatusShipped,
	constants.OrderStatusOutForDelivery,
	constants.OrderStatusDelivered,
}

// TrackerStep 进度条单步
type TrackerStep struct {
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// OrderTracker 订单进度
type OrderTracker struct {
	Status        string        `json:"status"`
	PaymentStatus string        `json:"payment_status"`
	Index         int           `json:"index"`
	Percent       int           `json:"percent"`
	Steps         []TrackerStep `json:"steps"`
}

// ProgressIndex 状态在进度列表中的位置，不在列表中返回 0
func ProgressIndex(status string) int {
	status = strings.TrimSpace(status)
	for i, stage := range ProgressStages {
		if stage == status {
			return i
		}
	}
	return 0
}

// ProgressPercent 进度百分比（0-100）
func ProgressPercent(status string) int {
	last := len(ProgressStages) - 1
	if last <= 0 {
		return 0
	}
	return ProgressIndex(status) * 100 / last
}

// BuildTracker 生成订单详情页的进度条数据
func BuildTracker(order models.Order) OrderTracker {
	index := ProgressIndex(order.Status)
	steps := make([]TrackerStep, 0, len(ProgressStages))
	for i, stage := range ProgressStages {
		steps = append(steps, TrackerStep{
			Status:    stage,
			Completed: i <= index,
			Current:   i == index,
		})
	}
	return OrderTracker{
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Index:         index,
		Percent:       ProgressPercent(order.Status),
		Steps:         steps,
	}
}

// IsKnownOrderStatus 是否为合法订单状态
func IsKnownOrderStatus(status string) bool {
	if status == constants.OrderStatusCancelled {
		return true
	}
	for _, s := range orderStatusSequence {
		if s == status {
			return true
		}
	}
	return false
}

// IsKnownPaymentStatus 是否为合法支付状态
func IsKnownPaymentStatus(status string) bool {
	switch status {
	case constants.PaymentStatusPending, constants.PaymentStatusPartiallyPaid, constants.PaymentStatusPaid:
		return true
	}
	return false
}

// TransitionPolicy 订单状态流转策略
type TransitionPolicy interface {
	Allow(from, to string) bool
}

// PermissivePolicy 任意状态之间均可流转（默认）
type PermissivePolicy struct{}

// Allow 总是允许
func (PermissivePolicy) Allow(_, _ string) bool {
	return true
}

// MonotonicPolicy 只允许向前推进，非终态可取消
type MonotonicPolicy struct{}

// Allow 判断是否允许流转
func (MonotonicPolicy) Allow(from, to string) bool {
	return isTransitionAllowed(from, to)
}

var allowedTransitions = buildMonotonicTransitions()

func buildMonotonicTransitions() map[string]map[string]bool {
	transitions := make(map[string]map[string]bool, len(orderStatusSequence)+1)
	for i, from := range orderStatusSequence {
		targets := make(map[string]bool)
		for _, to := range orderStatusSequence[i+1:] {
			targets[to] = true
		}
		if from != constants.OrderStatusDelivered {
			targets[constants.OrderStatusCancelled] = true
		}
		transitions[from] = targets
	}
	transitions[constants.OrderStatusCancelled] = map[string]bool{}
	return transitions
}

func isTransitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// NewTransitionPolicy 按配置选择策略
func NewTransitionPolicy(strict bool) TransitionPolicy {
	if strict {
		return MonotonicPolicy{}
	}
	return PermissivePolicy{}
}
