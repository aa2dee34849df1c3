package shared

import (
	"github.com/buildmart-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// CartSessionContextKey 购物车会话在 gin 上下文中的键
const CartSessionContextKey = "cart_session"

// GetCartSession 读取中间件写入的购物车会话，缺失时使用默认会话
func GetCartSession(c *gin.Context) string {
	if c == nil {
		return constants.CartSessionDefault
	}
	if value, ok := c.Get(CartSessionContextKey); ok {
		if session, ok := value.(string); ok && session != "" {
			return session
		}
	}
	return constants.CartSessionDefault
}
