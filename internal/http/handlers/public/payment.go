package public

import (
	"strings"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/http/handlers/shared"
	"github.com/buildmart-next/internal/http/response"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PayDueRequest 尾款支付请求，amount 缺省时按当前待付金额支付
type PayDueRequest struct {
	Amount *models.Money `json:"amount"`
}

// PaymentQuote 支付前金额预览
type PaymentQuote struct {
	OrderID        string       `json:"order_id"`
	PaymentStatus  string       `json:"payment_status"`
	OutstandingDue models.Money `json:"outstanding_due"`
	AdvanceAmount  models.Money `json:"advance_amount"`
	AdvanceEnabled bool         `json:"advance_enabled"`
}

// GetPaymentQuote 查询订单待付与预付金额
func (h *Handler) GetPaymentQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	order, ok := h.OrderStore.GetOrder(id)
	if !ok {
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		return
	}
	response.Success(c, PaymentQuote{
		OrderID:        order.ID,
		PaymentStatus:  order.PaymentStatus,
		OutstandingDue: models.NewMoneyFromDecimal(service.OutstandingDue(order)),
		AdvanceAmount:  models.NewMoneyFromDecimal(h.PaymentService.AdvanceAmount(order)),
		AdvanceEnabled: !order.IsAdvancePaid && order.PaymentStatus == constants.PaymentStatusPending,
	})
}

// PayDue 支付尾款（模拟网关，阻塞至扣款完成）
func (h *Handler) PayDue(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var req PayDueRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.payment_amount_invalid", nil)
			return
		}
	}

	var amount decimal.Decimal
	if req.Amount != nil {
		amount = req.Amount.Decimal
	} else {
		order, ok := h.OrderStore.GetOrder(id)
		if !ok {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		amount = service.OutstandingDue(order)
		if !amount.IsPositive() {
			respondError(c, response.CodeConflict, "error.payment_already_settled", nil)
			return
		}
	}

	receipt, err := h.PaymentService.PayDue(c.Request.Context(), id, amount)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	shared.RequestLog(c).Infow("order_due_paid",
		"order_id", receipt.OrderID,
		"amount", receipt.Amount.String(),
		"reference", receipt.Reference,
	)
	response.Success(c, gin.H{
		"receipt": receipt,
		"detail":  buildOrderDetail(receipt.Order),
	})
}

// PayAdvance 支付预付款
func (h *Handler) PayAdvance(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	receipt, err := h.PaymentService.PayAdvance(c.Request.Context(), id)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	shared.RequestLog(c).Infow("order_advance_paid",
		"order_id", receipt.OrderID,
		"amount", receipt.Amount.String(),
		"reference", receipt.Reference,
	)
	response.Success(c, gin.H{
		"receipt": receipt,
		"detail":  buildOrderDetail(receipt.Order),
	})
}
