package simulated

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/buildmart-next/internal/constants"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountInvalid = errors.New("simulated charge amount invalid")
	ErrOrderRequired = errors.New("simulated charge order id required")
)

// DefaultDelay 默认模拟网关耗时
const DefaultDelay = 2 * time.Second

// Config 模拟网关配置
type Config struct {
	Delay       time.Duration // 模拟处理耗时
	FailCharges bool          // 所有扣款均返回失败
}

// ChargeInput 扣款输入
type ChargeInput struct {
	OrderID string
	Kind    string // advance / due
	Amount  decimal.Decimal
}

// ChargeResult 扣款结果，Outcome 为 succeeded 或 failed
type ChargeResult struct {
	Reference   string
	Outcome     string
	Amount      decimal.Decimal
	ProcessedAt time.Time
}

// Succeeded 是否成功
func (r *ChargeResult) Succeeded() bool {
	return r != nil && r.Outcome == constants.PaymentOutcomeSucceeded
}

// Gateway 模拟支付网关：等待固定时长后给出结果
type Gateway struct {
	cfg Config
	now func() time.Time
}

// New 创建模拟网关，Delay 小于 0 时按 0 处理
func New(cfg Config) *Gateway {
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return &Gateway{cfg: cfg, now: time.Now}
}

// Charge 执行扣款
//
// 每次调用最多产生一个终态：等待结束给出成功/失败，或 ctx 取消时返回 ctx.Err()。
func (g *Gateway) Charge(ctx context.Context, input ChargeInput) (*ChargeResult, error) {
	if strings.TrimSpace(input.OrderID) == "" {
		return nil, ErrOrderRequired
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrAmountInvalid, input.Amount.String())
	}

	if g.cfg.Delay > 0 {
		timer := time.NewTimer(g.cfg.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := constants.PaymentOutcomeSucceeded
	if g.cfg.FailCharges {
		outcome = constants.PaymentOutcomeFailed
	}
	return &ChargeResult{
		Reference:   "SIM-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16]),
		Outcome:     outcome,
		Amount:      input.Amount.Round(2),
		ProcessedAt: g.now(),
	}, nil
}
