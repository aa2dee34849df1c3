package queue

import (
	"encoding/json"

	"github.com/buildmart-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusNotification 订单状态通知任务
	TaskOrderStatusNotification = constants.TaskOrderStatusNotification
)

// OrderStatusNotificationPayload 订单状态通知载荷
type OrderStatusNotificationPayload struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	Event         string `json:"event"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// NewOrderStatusNotificationTask 创建订单状态通知任务
func NewOrderStatusNotificationTask(payload OrderStatusNotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotification, body), nil
}

// ParseOrderStatusNotificationPayload 解析订单状态通知载荷
func ParseOrderStatusNotificationPayload(task *asynq.Task) (OrderStatusNotificationPayload, error) {
	var payload OrderStatusNotificationPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
