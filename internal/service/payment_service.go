package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/payment/simulated"

	"github.com/shopspring/decimal"
)

// PaymentGateway 支付网关
type PaymentGateway interface {
	Charge(ctx context.Context, input simulated.ChargeInput) (*simulated.ChargeResult, error)
}

// PaymentReceipt 支付回执
type PaymentReceipt struct {
	OrderID   string       `json:"order_id"`
	Kind      string       `json:"kind"`
	Amount    models.Money `json:"amount"`
	Reference string       `json:"reference"`
	Order     models.Order `json:"order"`
}

// PaymentService 支付服务
//
// 同一订单同一时刻只允许一笔支付在途，第二笔直接返回 ErrPaymentInProgress。
type PaymentService struct {
	orders      *OrderStore
	gateway     PaymentGateway
	advanceRate decimal.Decimal

	mu       sync.Mutex
	inFlight map[string]string
}

// NewPaymentService 创建支付服务，advanceRate 不在 (0,1) 内时按 0.3 处理
func NewPaymentService(orders *OrderStore, gateway PaymentGateway, advanceRate float64) *PaymentService {
	rate := decimal.NewFromFloat(advanceRate)
	if !rate.IsPositive() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		rate = decimal.NewFromFloat(0.3)
	}
	return &PaymentService{
		orders:      orders,
		gateway:     gateway,
		advanceRate: rate,
		inFlight:    make(map[string]string),
	}
}

func (s *PaymentService) acquire(orderID, kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[orderID]; busy {
		return false
	}
	s.inFlight[orderID] = kind
	return true
}

func (s *PaymentService) release(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, orderID)
}

// OutstandingDue 订单当前待付金额
func OutstandingDue(order models.Order) decimal.Decimal {
	if order.IsDuePaid || order.PaymentStatus == constants.PaymentStatusPaid {
		return decimal.Zero
	}
	if order.DueAmount.IsPositive() {
		return order.DueAmount.Round(2)
	}
	return order.Total.Sub(order.AdvancePaid.Decimal).Round(2)
}

// AdvanceAmount 订单预付款金额（总额按比例，保留两位小数）
func (s *PaymentService) AdvanceAmount(order models.Order) decimal.Decimal {
	return order.Total.Mul(s.advanceRate).Round(2)
}

// PayDue 支付尾款，金额必须等于当前待付金额
func (s *PaymentService) PayDue(ctx context.Context, orderID string, amount decimal.Decimal) (*PaymentReceipt, error) {
	orderID = strings.TrimSpace(orderID)
	if !amount.IsPositive() {
		return nil, ErrPaymentAmountInvalid
	}
	if !s.acquire(orderID, constants.PaymentKindDue) {
		logger.Warnw("payment_due_rejected_in_flight", "order_id", orderID)
		return nil, ErrPaymentInProgress
	}
	defer s.release(orderID)

	order, ok := s.orders.GetOrder(orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	if order.IsDuePaid || order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrPaymentAlreadySettled
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}
	due := OutstandingDue(order)
	if !amount.Round(2).Equal(due) {
		logger.Warnw("payment_due_amount_mismatch",
			"order_id", orderID,
			"amount", amount.String(),
			"due", due.String(),
		)
		return nil, ErrPaymentAmountMismatch
	}

	target := statusAfterPayment(order.Status)
	if !s.orders.AllowsTransition(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	result, err := s.charge(ctx, orderID, constants.PaymentKindDue, due)
	if err != nil {
		return nil, err
	}

	zero := models.NewMoneyFromDecimal(decimal.Zero)
	settled := true
	updated := s.orders.UpdateOrderStatus(orderID, target, models.OrderUpdate{
		PaymentStatus: constants.PaymentStatusPaid,
		IsDuePaid:     &settled,
		DueAmount:     &zero,
	})
	if updated.Err != nil {
		logOrphanedCharge(orderID, constants.PaymentKindDue, due, result, updated)
		return nil, updated.Err
	}
	return &PaymentReceipt{
		OrderID:   orderID,
		Kind:      constants.PaymentKindDue,
		Amount:    models.NewMoneyFromDecimal(due),
		Reference: result.Reference,
		Order:     updated.Order,
	}, nil
}

// PayAdvance 支付预付款，仅适用于尚未有任何支付的订单
func (s *PaymentService) PayAdvance(ctx context.Context, orderID string) (*PaymentReceipt, error) {
	orderID = strings.TrimSpace(orderID)
	if !s.acquire(orderID, constants.PaymentKindAdvance) {
		logger.Warnw("payment_advance_rejected_in_flight", "order_id", orderID)
		return nil, ErrPaymentInProgress
	}
	defer s.release(orderID)

	order, ok := s.orders.GetOrder(orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	if order.IsDuePaid || order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrPaymentAlreadySettled
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}
	if order.IsAdvancePaid || order.PaymentStatus != constants.PaymentStatusPending {
		return nil, ErrAdvanceNotApplicable
	}
	advance := s.AdvanceAmount(order)
	if !advance.IsPositive() {
		return nil, ErrAdvanceNotApplicable
	}

	status := ""
	if order.Status == constants.OrderStatusPending {
		status = constants.OrderStatusVerified
	}
	if !s.orders.AllowsTransition(order.Status, status) {
		return nil, ErrOrderStatusInvalid
	}

	result, err := s.charge(ctx, orderID, constants.PaymentKindAdvance, advance)
	if err != nil {
		return nil, err
	}

	advancePaid := models.NewMoneyFromDecimal(advance)
	due := models.NewMoneyFromDecimal(order.Total.Sub(advance))
	paid := true
	updated := s.orders.UpdateOrderStatus(orderID, status, models.OrderUpdate{
		PaymentStatus: constants.PaymentStatusPartiallyPaid,
		IsAdvancePaid: &paid,
		AdvancePaid:   &advancePaid,
		DueAmount:     &due,
	})
	if updated.Err != nil {
		logOrphanedCharge(orderID, constants.PaymentKindAdvance, advance, result, updated)
		return nil, updated.Err
	}
	return &PaymentReceipt{
		OrderID:   orderID,
		Kind:      constants.PaymentKindAdvance,
		Amount:    advancePaid,
		Reference: result.Reference,
		Order:     updated.Order,
	}, nil
}

func (s *PaymentService) charge(ctx context.Context, orderID, kind string, amount decimal.Decimal) (*simulated.ChargeResult, error) {
	logger.Infow("payment_charge_started", "order_id", orderID, "kind", kind, "amount", amount.String())
	result, err := s.gateway.Charge(ctx, simulated.ChargeInput{
		OrderID: orderID,
		Kind:    kind,
		Amount:  amount,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Warnw("payment_charge_cancelled", "order_id", orderID, "kind", kind, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentCancelled, err)
		}
		logger.Errorw("payment_charge_error", "order_id", orderID, "kind", kind, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if !result.Succeeded() {
		logger.Warnw("payment_charge_failed", "order_id", orderID, "kind", kind, "reference", result.Reference)
		return nil, ErrPaymentFailed
	}
	logger.Infow("payment_charge_succeeded", "order_id", orderID, "kind", kind, "reference", result.Reference)
	return result, nil
}

// logOrphanedCharge 扣款成功但订单未能落账，需人工对账
func logOrphanedCharge(orderID, kind string, amount decimal.Decimal, result *simulated.ChargeResult, updated UpdateResult) {
	logger.Errorw("payment_charge_orphaned",
		"order_id", orderID,
		"kind", kind,
		"amount", amount.String(),
		"reference", result.Reference,
		"outcome", updated.Outcome.String(),
		"status", updated.Order.Status,
		"error", updated.Err,
	)
}

// statusAfterPayment 结清后推进到 paid，已处于后续阶段的订单保持原状态
func statusAfterPayment(current string) string {
	switch current {
	case constants.OrderStatusPending, constants.OrderStatusVerified:
		return constants.OrderStatusPaid
	}
	return ""
}
