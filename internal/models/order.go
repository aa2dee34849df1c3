package models

import "time"

// Order 订单（仅存于内存，进程重启后丢失）
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	Items           []OrderItem `json:"items"`
	Subtotal        Money       `json:"subtotal"`
	DeliveryCharge  Money       `json:"deliveryCharge"`
	Tax             Money       `json:"tax"`
	Total           Money       `json:"total"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	AdvancePaid     Money       `json:"advancePaid"`
	DueAmount       Money       `json:"dueAmount"`
	IsAdvancePaid   bool        `json:"isAdvancePaid"`
	IsDuePaid       bool        `json:"isDuePaid"`
	Address         string      `json:"address"`
	Phone           string      `json:"phone"`
	ShippingAddress string      `json:"shippingAddress"`
	TrackingNumber  string      `json:"trackingNumber"`
	Carrier         string      `json:"carrier"`
	OrderDate       time.Time   `json:"orderDate"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Clone 深拷贝，返回给调用方的订单均为快照
func (o Order) Clone() Order {
	o.Items = CloneOrderItems(o.Items)
	return o
}

// OrderDraft 创建订单时调用方提供的部分字段，零值表示未提供
type OrderDraft struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	Items           []OrderItem `json:"items"`
	Subtotal        Money       `json:"subtotal"`
	DeliveryCharge  Money       `json:"deliveryCharge"`
	Tax             Money       `json:"tax"`
	Total           Money       `json:"total"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	AdvancePaid     Money       `json:"advancePaid"`
	DueAmount       Money       `json:"dueAmount"`
	IsAdvancePaid   bool        `json:"isAdvancePaid"`
	IsDuePaid       bool        `json:"isDuePaid"`
	Address         string      `json:"address"`
	Phone           string      `json:"phone"`
	ShippingAddress string      `json:"shippingAddress"`
	TrackingNumber  string      `json:"trackingNumber"`
	Carrier         string      `json:"carrier"`
	OrderDate       time.Time   `json:"orderDate"`
}

// OrderUpdate 订单状态更新时合并的部分字段
//
// 指针字段为 nil 表示未提供；指向零值（0 / false / ""）视为显式提供。
// OrderNumber、PaymentStatus 为空串视为未提供，Items 为 nil 视为未提供。
type OrderUpdate struct {
	OrderNumber     string      `json:"orderNumber"`
	PaymentStatus   string      `json:"paymentStatus"`
	Items           []OrderItem `json:"items"`
	Subtotal        *Money      `json:"subtotal"`
	DeliveryCharge  *Money      `json:"deliveryCharge"`
	Tax             *Money      `json:"tax"`
	Total           *Money      `json:"total"`
	AdvancePaid     *Money      `json:"advancePaid"`
	DueAmount       *Money      `json:"dueAmount"`
	IsAdvancePaid   *bool       `json:"isAdvancePaid"`
	IsDuePaid       *bool       `json:"isDuePaid"`
	Address         *string     `json:"address"`
	Phone           *string     `json:"phone"`
	ShippingAddress *string     `json:"shippingAddress"`
	TrackingNumber  *string     `json:"trackingNumber"`
	Carrier         *string     `json:"carrier"`
}
