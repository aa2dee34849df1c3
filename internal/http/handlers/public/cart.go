package public

import (
	"strings"

	"github.com/buildmart-next/internal/http/handlers/shared"
	"github.com/buildmart-next/internal/http/response"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/numeric"
	"github.com/buildmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	Item     models.CartItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求，数量可为数字或数字字符串
type UpdateCartItemRequest struct {
	Quantity numeric.Value `json:"quantity"`
}

// CartView 购物车响应
type CartView struct {
	Session   string            `json:"session"`
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     models.Money      `json:"total"`
	Quote     *service.Quote    `json:"quote,omitempty"`
}

func (h *Handler) currentCart(c *gin.Context) (*service.CartStore, string, bool) {
	session := shared.GetCartSession(c)
	cart, err := h.CartRegistry.Cart(c.Request.Context(), session)
	if err != nil {
		respondCartError(c, err)
		return nil, session, false
	}
	return cart, session, true
}

func (h *Handler) buildCartView(session string, cart *service.CartStore) CartView {
	total := cart.CartTotal()
	view := CartView{
		Session:   session,
		Items:     cart.Items(),
		ItemCount: cart.ItemCount(),
		Total:     total,
	}
	if h.CheckoutService != nil && len(view.Items) > 0 {
		quote := h.CheckoutService.QuoteFor(total)
		view.Quote = &quote
	}
	return view
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	cart, session, ok := h.currentCart(c)
	if !ok {
		return
	}
	response.Success(c, h.buildCartView(session, cart))
}

// AddCartItem 加入购物车，相同 id 合并数量
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	req.Item.ID = strings.TrimSpace(req.Item.ID)
	if req.Item.ID == "" {
		respondError(c, response.CodeBadRequest, "error.cart_item_id_required", nil)
		return
	}
	if req.Item.Price.IsZero() {
		respondError(c, response.CodeBadRequest, "error.cart_item_price_required", nil)
		return
	}

	cart, session, ok := h.currentCart(c)
	if !ok {
		return
	}
	cart.AddToCart(req.Item, req.Quantity)
	shared.RequestLog(c).Infow("cart_item_added",
		"session", session,
		"item_id", req.Item.ID,
		"quantity", req.Quantity,
	)
	response.Success(c, h.buildCartView(session, cart))
}

// UpdateCartItem 修改购物车项数量，非法数量不生效
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, session, ok := h.currentCart(c)
	if !ok {
		return
	}
	updated := cart.UpdateQuantity(id, req.Quantity)
	response.Success(c, gin.H{
		"updated": updated,
		"cart":    h.buildCartView(session, cart),
	})
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	cart, session, ok := h.currentCart(c)
	if !ok {
		return
	}
	removed := cart.RemoveFromCart(id)
	response.Success(c, gin.H{
		"removed": removed,
		"cart":    h.buildCartView(session, cart),
	})
}

// GetCartItemStatus 查询商品是否在购物车中
func (h *Handler) GetCartItemStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	cart, _, ok := h.currentCart(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"id": id, "in_cart": cart.IsItemInCart(id)})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	cart, session, ok := h.currentCart(c)
	if !ok {
		return
	}
	cart.ClearCart()
	response.Success(c, h.buildCartView(session, cart))
}
