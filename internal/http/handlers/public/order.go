package public

import (
	"strconv"
	"strings"

	"github.com/buildmart-next/internal/http/handlers/shared"
	"github.com/buildmart-next/internal/http/response"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shipping_address"`
}

// UpdateOrderStatusRequest 订单状态更新请求，status 为空时保留原状态
type UpdateOrderStatusRequest struct {
	Status  string             `json:"status"`
	Updates models.OrderUpdate `json:"updates"`
}

// OrderDetail 订单详情（附带进度条与待付金额）
type OrderDetail struct {
	Order          models.Order         `json:"order"`
	Tracker        service.OrderTracker `json:"tracker"`
	OutstandingDue models.Money         `json:"outstanding_due"`
}

func buildOrderDetail(order models.Order) OrderDetail {
	return OrderDetail{
		Order:          order,
		Tracker:        service.BuildTracker(order),
		OutstandingDue: models.NewMoneyFromDecimal(service.OutstandingDue(order)),
	}
}

// Checkout 将当前购物车转为订单
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.CheckoutService.Checkout(c.Request.Context(), shared.GetCartSession(c), service.CheckoutInput{
		Address:         req.Address,
		Phone:           req.Phone,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, buildOrderDetail(order))
}

// ListOrders 订单列表（按创建顺序）
func (h *Handler) ListOrders(c *gin.Context) {
	orders := h.OrderStore.Orders()
	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, order := range orders {
			if order.Status == status {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}
	response.Success(c, gin.H{
		"orders":   orders,
		"revision": h.OrderStore.Revision(),
	})
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	order, ok := h.OrderStore.GetOrder(strings.TrimSpace(c.Param("id")))
	if !ok {
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		return
	}
	response.Success(c, buildOrderDetail(order))
}

// UpdateOrderStatus 更新订单状态与字段
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.order_id_required", nil)
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	req.Status = strings.TrimSpace(req.Status)
	if req.Status != "" && !service.IsKnownOrderStatus(req.Status) {
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		return
	}
	if req.Updates.PaymentStatus != "" && !service.IsKnownPaymentStatus(req.Updates.PaymentStatus) {
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		return
	}

	result := h.OrderStore.UpdateOrderStatus(id, req.Status, req.Updates)
	if result.Err != nil {
		respondOrderError(c, result.Err)
		return
	}
	response.Success(c, gin.H{
		"outcome": result.Outcome.String(),
		"changed": result.Changed,
		"detail":  buildOrderDetail(result.Order),
	})
}

// ListOrderNotifications 订单通知记录，?unread=1 只看未读
func (h *Handler) ListOrderNotifications(c *gin.Context) {
	h.listNotifications(c, service.NotificationQuery{
		OrderID: strings.TrimSpace(c.Param("id")),
	})
}

// ListNotifications 按订单号前缀查询通知
func (h *Handler) ListNotifications(c *gin.Context) {
	h.listNotifications(c, service.NotificationQuery{
		OrderNumber: strings.TrimSpace(c.Query("order_number")),
	})
}

func (h *Handler) listNotifications(c *gin.Context, query service.NotificationQuery) {
	if h.NotificationService == nil {
		response.SuccessWithPage(c, []models.Notification{}, shared.BuildPagination(1, 0, 0))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	query.Page, query.PageSize = shared.NormalizePagination(page, pageSize)
	query.OnlyUnread = parseFlag(c.Query("unread"))

	items, total, err := h.NotificationService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, items, shared.BuildPagination(query.Page, query.PageSize, total))
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// MarkNotificationRead 标记订单下的通知已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("notification_id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if h.NotificationService == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}
	orderID := strings.TrimSpace(c.Param("id"))
	if err := h.NotificationService.MarkRead(c.Request.Context(), orderID, uint(id)); err != nil {
		respondNotificationError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "order_id": orderID, "read": true})
}
