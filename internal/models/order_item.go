package models

import "github.com/buildmart-next/internal/numeric"

// OrderItem 订单项，字段为下单时购物车项的快照
type OrderItem struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Price      numeric.Value `json:"price"`
	Quantity   numeric.Value `json:"quantity"`
	Unit       string        `json:"unit"`
	Image      string        `json:"image,omitempty"`
	DealerName string        `json:"dealerName"`
	DealerID   string        `json:"dealerId"`
}

// CloneOrderItems 复制订单项列表，nil 保持为 nil
func CloneOrderItems(items []OrderItem) []OrderItem {
	if items == nil {
		return nil
	}
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}

// OrderItemsEqual 逐项比较订单项
func OrderItemsEqual(a, b []OrderItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
