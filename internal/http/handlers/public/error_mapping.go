package public

import (
	"errors"

	"github.com/buildmart-next/internal/http/response"
	"github.com/buildmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrCartSessionInvalid, code: response.CodeBadRequest, key: "error.cart_session_invalid"},
	{target: service.ErrCartItemInvalid, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrStoreNotInitialized, code: response.CodeUnavailable, key: "error.store_not_initialized"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeConflict, key: "error.order_status_invalid"},
}

var notificationErrorRules = []mappedHandlerError{
	{target: service.ErrNotificationNotFound, code: response.CodeNotFound, key: "error.not_found"},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentInProgress, code: response.CodeConflict, key: "error.payment_in_progress"},
	{target: service.ErrPaymentAlreadySettled, code: response.CodeConflict, key: "error.payment_already_settled"},
	{target: service.ErrAdvanceNotApplicable, code: response.CodeBadRequest, key: "error.payment_advance_not_due"},
	{target: service.ErrPaymentAmountInvalid, code: response.CodeBadRequest, key: "error.payment_amount_invalid"},
	{target: service.ErrPaymentAmountMismatch, code: response.CodeBadRequest, key: "error.payment_amount_mismatch"},
	{target: service.ErrPaymentCancelled, code: response.CodeBadRequest, key: "error.payment_cancelled"},
	{target: service.ErrPaymentFailed, code: response.CodePaymentRequired, key: "error.payment_failed"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartErrorRules, checkoutErrorRules), response.CodeInternal, "error.order_create_failed")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
}

func respondNotificationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, notificationErrorRules, response.CodeInternal, "error.internal")
}

func respondPaymentError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(orderErrorRules, paymentErrorRules), response.CodeInternal, "error.payment_failed")
}
