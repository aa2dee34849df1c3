package provider

import (
	"time"

	"github.com/buildmart-next/internal/cache"
	"github.com/buildmart-next/internal/config"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/models"
	"github.com/buildmart-next/internal/payment/simulated"
	"github.com/buildmart-next/internal/queue"
	"github.com/buildmart-next/internal/repository"
	"github.com/buildmart-next/internal/service"
	"github.com/buildmart-next/internal/storage"

	"gorm.io/gorm"
)

// Container 依赖注入容器，所有存储在这里显式构造后注入各处
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	StorageEntryRepo repository.StorageEntryRepository
	NotificationRepo repository.NotificationRepository

	// Stores
	CartStorage  storage.Storage
	CartRegistry *service.CartRegistry
	OrderStore   *service.OrderStore

	// Services
	PaymentGateway      service.PaymentGateway
	PaymentService      *service.PaymentService
	CheckoutService     *service.CheckoutService
	NotificationService *service.NotificationService
}

// NewContainer 初始化容器（使用全局数据库连接）
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定数据库连接初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Stores
	c.initStores()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	if db == nil {
		return
	}
	c.StorageEntryRepo = repository.NewStorageEntryRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
}

func (c *Container) initStores() {
	cartStorage, err := storage.New(c.Config.Cart.Storage, c.StorageEntryRepo)
	if err != nil {
		logger.Warnw("provider_init_cart_storage_failed",
			"storage", c.Config.Cart.Storage,
			"fallback", "memory",
			"error", err,
		)
		cartStorage = storage.NewMemory()
	}
	c.CartStorage = cartStorage
	c.CartRegistry = service.NewCartRegistry(cartStorage, c.Config.Cart.Key)
	c.OrderStore = service.NewOrderStore(service.OrderStoreOptions{
		Policy:   service.NewTransitionPolicy(c.Config.Order.StrictTransitions),
		Notifier: service.NewQueueOrderNotifier(c.QueueClient),
	})
}

func (c *Container) initServices() {
	c.PaymentGateway = simulated.New(simulated.Config{
		Delay:       time.Duration(c.Config.Payment.DelayMillis) * time.Millisecond,
		FailCharges: c.Config.Payment.SimulateFailure,
	})
	c.PaymentService = service.NewPaymentService(c.OrderStore, c.PaymentGateway, c.Config.Payment.AdvanceRate)
	c.CheckoutService = service.NewCheckoutService(
		c.CartRegistry,
		c.OrderStore,
		c.Config.Order.DeliveryCharge,
		c.Config.Order.TaxRate,
	)
	if c.NotificationRepo != nil {
		c.NotificationService = service.NewNotificationService(c.NotificationRepo)
	}
}
