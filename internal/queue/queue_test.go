package queue

import (
	"testing"

	"github.com/buildmart-next/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderStatusNotification(OrderStatusNotificationPayload{OrderID: "1"}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestOrderStatusNotificationTaskRoundTrip(t *testing.T) {
	task, err := NewOrderStatusNotificationTask(OrderStatusNotificationPayload{
		OrderID:       "1730000000000",
		OrderNumber:   "BM20261015120000123456",
		Event:         "order_updated",
		Status:        "shipped",
		PaymentStatus: "paid",
	})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderStatusNotification {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	payload, err := ParseOrderStatusNotificationPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.Status != "shipped" || payload.OrderNumber != "BM20261015120000123456" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected default addr %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config %+v", cfg)
	}
}
