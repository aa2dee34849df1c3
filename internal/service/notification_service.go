package service

import (
	"context"
	"errors"
	"strings"

	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/queue"
	"github.com/buildmart-next/internal/repository"
)

var (
	// ErrNotificationInvalid 通知载荷无效
	ErrNotificationInvalid = errors.New("invalid order notification")
	// ErrNotificationNotFound 通知不存在或不属于该订单
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationQuery 通知列表查询条件
type NotificationQuery struct {
	OrderID     string
	OrderNumber string
	OnlyUnread  bool
	Page        int
	PageSize    int
}

// NotificationService 订单通知服务
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Record 根据队列载荷写入通知记录
func (s *NotificationService) Record(ctx context.Context, payload queue.OrderStatusNotificationPayload) (*models.Notification, error) {
	orderID := strings.TrimSpace(payload.OrderID)
	if orderID == "" || strings.TrimSpace(payload.Event) == "" {
		return nil, ErrNotificationInvalid
	}
	notification := &models.Notification{
		OrderID:       orderID,
		OrderNumber:   strings.TrimSpace(payload.OrderNumber),
		Event:         strings.TrimSpace(payload.Event),
		Status:        strings.TrimSpace(payload.Status),
		PaymentStatus: strings.TrimSpace(payload.PaymentStatus),
		ProgressPct:   ProgressPercent(payload.Status),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// List 分页查询通知，订单号按前缀匹配
func (s *NotificationService) List(ctx context.Context, query NotificationQuery) ([]models.Notification, int64, error) {
	if query.PageSize <= 0 || query.PageSize > 100 {
		query.PageSize = 20
	}
	return s.repo.List(ctx, repository.NotificationListFilter{
		OrderID:     strings.TrimSpace(query.OrderID),
		OrderNumber: strings.TrimSpace(query.OrderNumber),
		OnlyUnread:  query.OnlyUnread,
		Page:        query.Page,
		PageSize:    query.PageSize,
	})
}

// MarkRead 标记订单下的通知为已读
func (s *NotificationService) MarkRead(ctx context.Context, orderID string, id uint) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" || id == 0 {
		return ErrNotificationNotFound
	}
	found, err := s.repo.MarkRead(ctx, orderID, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}
