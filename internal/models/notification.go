package models

import "time"

// Notification 订单状态通知记录
type Notification struct {
	ID            uint      `gorm:"primarykey" json:"id"`                             // 主键
	OrderID       string    `gorm:"type:varchar(64);index;not null" json:"order_id"`  // 订单ID
	OrderNumber   string    `gorm:"type:varchar(64);index" json:"order_number"`       // 订单编号
	Event         string    `gorm:"type:varchar(32);not null" json:"event"`           // 事件类型
	Status        string    `gorm:"type:varchar(32);not null" json:"status"`          // 订单状态
	PaymentStatus string    `gorm:"type:varchar(32);not null" json:"payment_status"`  // 支付状态
	ProgressPct   int       `gorm:"not null;default:0" json:"progress_percent"`       // 进度百分比
	Read          bool      `gorm:"column:is_read;not null;default:false" json:"read"` // 是否已读
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                          // 创建时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
