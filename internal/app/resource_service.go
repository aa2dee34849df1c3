package app

import (
	"context"

	"github.com/buildmart-next/internal/cache"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/provider"
)

// resourceService 在停止阶段释放队列客户端与 Redis 连接
type resourceService struct {
	container *provider.Container
}

func newResourceService(c *provider.Container) *resourceService {
	return &resourceService{container: c}
}

func (s *resourceService) Name() string {
	return "resources"
}

// Start 阻塞直到上下文结束
func (s *resourceService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *resourceService) Stop(_ context.Context) error {
	if s.container != nil && s.container.QueueClient != nil {
		if err := s.container.QueueClient.Close(); err != nil {
			logger.Warnw("app_queue_client_close_failed", "error", err)
		}
	}
	return cache.Close()
}
