package router

import (
	"fmt"
	"strings"

	"github.com/buildmart-next/internal/cache"
	"github.com/buildmart-next/internal/config"
	"github.com/buildmart-next/internal/constants"
	publichandlers "github.com/buildmart-next/internal/http/handlers/public"
	"github.com/buildmart-next/internal/http/response"
	"github.com/buildmart-next/internal/i18n"
	"github.com/buildmart-next/internal/logger"
	"github.com/buildmart-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	paymentRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:payment", redisPrefix),
		WindowSeconds: cfg.Security.PaymentRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PaymentRateLimit.MaxRequests,
		MessageKey:    "error.payment_too_many",
	}
	paymentLimit := RateLimitMiddleware(cache.Client(), paymentRule, KeyByCartSessionAndParam("id"))

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(CartSessionMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{
			"status":   "ok",
			"revision": c.OrderStore.Revision(),
		})
	})

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/public/config", publicHandler.GetConfig)
		apiV1.GET("/notifications", publicHandler.ListNotifications)

		cart := apiV1.Group("/cart")
		{
			cart.GET("", publicHandler.GetCart)
			cart.DELETE("", publicHandler.ClearCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.GET("/items/:id", publicHandler.GetCartItemStatus)
			cart.PATCH("/items/:id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:id", publicHandler.RemoveCartItem)
		}

		orders := apiV1.Group("/orders")
		{
			orders.POST("", publicHandler.Checkout)
			orders.GET("", publicHandler.ListOrders)
			orders.GET("/:id", publicHandler.GetOrder)
			orders.PATCH("/:id/status", publicHandler.UpdateOrderStatus)
			orders.GET("/:id/notifications", publicHandler.ListOrderNotifications)
			orders.POST("/:id/notifications/:notification_id/read", publicHandler.MarkNotificationRead)
			orders.GET("/:id/payments", publicHandler.GetPaymentQuote)
			orders.POST("/:id/payments/advance", paymentLimit, publicHandler.PayAdvance)
			orders.POST("/:id/payments/due", paymentLimit, publicHandler.PayDue)
		}
	}

	return r
}
