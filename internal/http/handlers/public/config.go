package public

import (
	"time"

	"github.com/buildmart-next/internal/cache"
	"github.com/buildmart-next/internal/constants"
	"github.com/buildmart-next/internal/http/response"
	"github.com/buildmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// PublicConfig 前台配置
type PublicConfig struct {
	Currency          string   `json:"currency"`
	Languages         []string `json:"languages"`
	DeliveryCharge    float64  `json:"delivery_charge"`
	TaxRate           float64  `json:"tax_rate"`
	AdvanceRate       float64  `json:"advance_rate"`
	StrictTransitions bool     `json:"strict_transitions"`
	ProgressStages    []string `json:"progress_stages"`
	CartStorageKey    string   `json:"cart_storage_key"`
}

// GetConfig 获取前台配置，Redis 可用时缓存 60 秒
func (h *Handler) GetConfig(c *gin.Context) {
	var cached PublicConfig
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data := PublicConfig{
		Currency:          constants.SiteCurrencyDefault,
		Languages:         constants.SupportedLocales,
		DeliveryCharge:    h.Config.Order.DeliveryCharge,
		TaxRate:           h.Config.Order.TaxRate,
		AdvanceRate:       h.Config.Payment.AdvanceRate,
		StrictTransitions: h.Config.Order.StrictTransitions,
		ProgressStages:    service.ProgressStages,
		CartStorageKey:    h.Config.Cart.Key,
	}
	if data.CartStorageKey == "" {
		data.CartStorageKey = constants.CartStorageKey
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}
