package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusVerified       = "verified"
	OrderStatusPaid           = "paid"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 订单支付状态常量
const (
	PaymentStatusPending       = "pending"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusPaid          = "paid"
)

// 模拟网关结果常量
const (
	PaymentOutcomeSucceeded = "succeeded"
	PaymentOutcomeFailed    = "failed"
)

// 支付类型常量
const (
	PaymentKindAdvance = "advance"
	PaymentKindDue     = "due"
)

// 购物车存储常量
const (
	CartStorageKey      = "cart"
	CartSessionDefault  = "default"
	CartStorageMemory   = "memory"
	CartStorageDatabase = "database"
	CartStorageRedis    = "redis"
)

// 队列常量
const (
	QueueDefault                = "default"
	TaskOrderStatusNotification = "order:status_notification"
)

// 通知事件常量
const (
	NotificationEventOrderCreated = "order_created"
	NotificationEventOrderUpdated = "order_updated"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "bm"
)

// 币种常量
const (
	SiteCurrencyDefault = "INR"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

// SupportedLocales 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}
