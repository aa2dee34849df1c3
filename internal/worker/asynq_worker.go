package worker

import (
	"context"
	"errors"

	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/provider"
	"github.com/buildmart-next/internal/queue"
	"github.com/buildmart-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotification, c.handleOrderStatusNotification)
}

func (c *Consumer) handleOrderStatusNotification(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusNotificationPayload(task)
	if err != nil {
		logger.Warnw("worker_order_notification_unmarshal_failed", "error", err)
		return err
	}
	if c.Container == nil || c.NotificationService == nil {
		logger.Warnw("worker_order_notification_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	notification, err := c.NotificationService.Record(ctx, payload)
	if err != nil {
		if errors.Is(err, service.ErrNotificationInvalid) {
			logger.Debugw("worker_order_notification_skip_invalid_payload", "order_id", payload.OrderID, "event", payload.Event)
			return nil
		}
		logger.Warnw("worker_order_notification_record_failed",
			"order_id", payload.OrderID,
			"event", payload.Event,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_order_notification_recorded",
		"notification_id", notification.ID,
		"order_id", notification.OrderID,
		"order_number", notification.OrderNumber,
		"event", notification.Event,
		"status", notification.Status,
		"payment_status", notification.PaymentStatus,
	)
	return nil
}
