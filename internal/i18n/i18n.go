package i18n

import (
	"fmt"
	"strings"

	"github.com/buildmart-next/internal/constants"

	"github.com/gin-gonic/gin"
)

var messages = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.bad_request":              "Invalid request",
		"error.not_found":                "Resource not found",
		"error.internal":                 "Internal server error",
		"error.rate_limited":             "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.cart_item_invalid":        "Invalid cart item",
		"error.cart_empty":               "Cart is empty",
		"error.order_not_found":          "Order not found",
		"error.order_status_invalid":     "Order status transition not allowed",
		"error.order_create_failed":      "Failed to create order",
		"error.payment_in_progress":      "A payment for this order is already in progress",
		"error.payment_failed":           "Payment failed",
		"error.payment_amount_mismatch":  "Payment amount does not match the amount due",
		"error.payment_already_settled":  "Order is already paid",
		"error.payment_advance_not_due":  "Advance payment is not applicable to this order",
		"error.payment_too_many":         "Too many payment attempts, retry in %d seconds",
		"error.payment_cancelled":        "Payment was cancelled",
		"error.store_not_initialized":    "Store not initialized",
		"error.cart_session_invalid":     "Invalid cart session",
		"error.order_items_invalid":      "Invalid order items",
		"error.order_status_required":    "Order status is required",
		"error.payment_amount_invalid":   "Invalid payment amount",
		"error.order_id_required":        "Order id is required",
		"error.quantity_invalid":         "Invalid quantity",
		"error.cart_item_id_required":    "Cart item id is required",
		"error.cart_item_price_required": "Cart item price is required",
	},
	constants.LocaleZhCN: {
		"error.bad_request":              "请求参数错误",
		"error.not_found":                "资源不存在",
		"error.internal":                 "服务器内部错误",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.cart_item_invalid":        "购物车商品无效",
		"error.cart_empty":               "购物车为空",
		"error.order_not_found":          "订单不存在",
		"error.order_status_invalid":     "订单状态流转不合法",
		"error.order_create_failed":      "创建订单失败",
		"error.payment_in_progress":      "该订单已有支付正在处理",
		"error.payment_failed":           "支付失败",
		"error.payment_amount_mismatch":  "支付金额与待付金额不一致",
		"error.payment_already_settled":  "订单已结清",
		"error.payment_advance_not_due":  "该订单无需支付预付款",
		"error.payment_too_many":         "支付请求过于频繁，请 %d 秒后重试",
		"error.payment_cancelled":        "支付已取消",
		"error.store_not_initialized":    "存储未初始化",
		"error.cart_session_invalid":     "购物车会话无效",
		"error.order_items_invalid":      "订单商品无效",
		"error.order_status_required":    "订单状态不能为空",
		"error.payment_amount_invalid":   "支付金额无效",
		"error.order_id_required":        "订单 ID 不能为空",
		"error.quantity_invalid":         "数量无效",
		"error.cart_item_id_required":    "购物车商品 ID 不能为空",
		"error.cart_item_price_required": "购物车商品价格不能为空",
	},
}

// ResolveLocale 从 Accept-Language 解析语言，无法识别时回退到默认语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return constants.SupportedLocales[0]
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		for _, locale := range constants.SupportedLocales {
			if strings.EqualFold(tag, locale) {
				return locale
			}
			if strings.EqualFold(strings.SplitN(tag, "-", 2)[0], strings.SplitN(locale, "-", 2)[0]) {
				return locale
			}
		}
	}
	return constants.SupportedLocales[0]
}

// T 翻译消息 key，缺失时依次回退默认语言与 key 本身
func T(locale, key string) string {
	if msg, ok := messages[locale][key]; ok {
		return msg
	}
	if msg, ok := messages[constants.SupportedLocales[0]][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
