package service

import (
	"context"
	"strings"

	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/models"

	"github.com/shopspring/decimal"
)

// CheckoutInput 结算输入
type CheckoutInput struct {
	Address         string
	Phone           string
	ShippingAddress string
}

// CheckoutService 结算服务：把购物车一次性复制为订单
type CheckoutService struct {
	carts          *CartRegistry
	orders         *OrderStore
	deliveryCharge decimal.Decimal
	taxRate        decimal.Decimal
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(carts *CartRegistry, orders *OrderStore, deliveryCharge, taxRate float64) *CheckoutService {
	charge := decimal.NewFromFloat(deliveryCharge)
	if charge.IsNegative() {
		charge = decimal.Zero
	}
	rate := decimal.NewFromFloat(taxRate)
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return &CheckoutService{
		carts:          carts,
		orders:         orders,
		deliveryCharge: charge,
		taxRate:        rate,
	}
}

// Quote 结算金额明细
type Quote struct {
	Subtotal       models.Money `json:"subtotal"`
	DeliveryCharge models.Money `json:"deliveryCharge"`
	Tax            models.Money `json:"tax"`
	Total          models.Money `json:"total"`
}

// QuoteFor 根据小计计算运费、税费与总额
func (s *CheckoutService) QuoteFor(subtotal models.Money) Quote {
	tax := subtotal.Mul(s.taxRate).Round(2)
	total := subtotal.Add(s.deliveryCharge).Add(tax)
	return Quote{
		Subtotal:       subtotal,
		DeliveryCharge: models.NewMoneyFromDecimal(s.deliveryCharge),
		Tax:            models.NewMoneyFromDecimal(tax),
		Total:          models.NewMoneyFromDecimal(total),
	}
}

// Checkout 复制购物车生成订单并清空购物车，之后购物车的变化不影响该订单
func (s *CheckoutService) Checkout(ctx context.Context, session string, input CheckoutInput) (models.Order, error) {
	cart, err := s.carts.Cart(ctx, session)
	if err != nil {
		return models.Order{}, err
	}
	items, subtotal := cart.TakeItems()
	if len(items) == 0 {
		return models.Order{}, ErrCartEmpty
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, item.ToOrderItem())
	}
	quote := s.QuoteFor(subtotal)

	shipping := strings.TrimSpace(input.ShippingAddress)
	if shipping == "" {
		shipping = strings.TrimSpace(input.Address)
	}
	order := s.orders.AddOrder(models.OrderDraft{
		Items:           orderItems,
		Subtotal:        quote.Subtotal,
		DeliveryCharge:  quote.DeliveryCharge,
		Tax:             quote.Tax,
		Total:           quote.Total,
		DueAmount:       quote.Total,
		Address:         strings.TrimSpace(input.Address),
		Phone:           strings.TrimSpace(input.Phone),
		ShippingAddress: shipping,
	})

	logger.Infow("checkout_completed",
		"session", session,
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"total", order.Total.String(),
	)
	return order, nil
}
