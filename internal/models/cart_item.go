package models

import "github.com/buildmart-next/internal/numeric"

// CartItem 购物车项（同一商品 + 经销商组合对应唯一 ID）
//
// JSON 形态与前端持久化的购物车数组保持一致，price/quantity 保留原始形态。
type CartItem struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Price      numeric.Value `json:"price"`
	Quantity   numeric.Value `json:"quantity"`
	Unit       string        `json:"unit"`
	Image      string        `json:"image,omitempty"`
	DealerName string        `json:"dealerName"`
	DealerID   string        `json:"dealerId"`
}

// ToOrderItem 下单时复制购物车项快照
func (c CartItem) ToOrderItem() OrderItem {
	return OrderItem(c)
}
