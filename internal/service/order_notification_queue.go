package service

import (
	"strings"

	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/queue"
)

// QueueOrderNotifier 将订单事件推入异步队列，队列未启用时跳过
type QueueOrderNotifier struct {
	client *queue.Client
}

// NewQueueOrderNotifier 创建队列通知器
func NewQueueOrderNotifier(client *queue.Client) *QueueOrderNotifier {
	return &QueueOrderNotifier{client: client}
}

// OrderCreated 订单创建事件
func (n *QueueOrderNotifier) OrderCreated(order models.Order) {
	n.enqueue(constants.NotificationEventOrderCreated, order)
}

// OrderUpdated 订单更新事件
func (n *QueueOrderNotifier) OrderUpdated(order models.Order, _ []string) {
	n.enqueue(constants.NotificationEventOrderUpdated, order)
}

func (n *QueueOrderNotifier) enqueue(event string, order models.Order) {
	if _, err := enqueueOrderStatusNotification(n.client, event, order); err != nil {
		logger.Warnw("order_notification_enqueue_failed",
			"order_id", order.ID,
			"event", event,
			"error", err,
		)
	}
}

// enqueueOrderStatusNotification 推送订单状态通知任务，skipped 表示未入队
func enqueueOrderStatusNotification(client *queue.Client, event string, order models.Order) (skipped bool, err error) {
	if client == nil || !client.Enabled() || strings.TrimSpace(order.ID) == "" {
		return true, nil
	}
	if err := client.EnqueueOrderStatusNotification(queue.OrderStatusNotificationPayload{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Event:         event,
		Status:        strings.TrimSpace(order.Status),
		PaymentStatus: strings.TrimSpace(order.PaymentStatus),
	}); err != nil {
		return false, err
	}
	return false, nil
}
