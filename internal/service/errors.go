package service

import "errors"

// 购物车相关错误
var (
	ErrStoreNotInitialized = errors.New("store not initialized")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCartItemInvalid     = errors.New("invalid cart item")
	ErrCartSessionInvalid  = errors.New("invalid cart session")
)

// 订单相关错误
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusInvalid = errors.New("order status transition not allowed")
)

// 支付相关错误
var (
	ErrPaymentInProgress     = errors.New("payment already in progress")
	ErrPaymentFailed         = errors.New("payment failed")
	ErrPaymentCancelled      = errors.New("payment cancelled")
	ErrPaymentAmountInvalid  = errors.New("invalid payment amount")
	ErrPaymentAmountMismatch = errors.New("payment amount does not match amount due")
	ErrPaymentAlreadySettled = errors.New("order already settled")
	ErrAdvanceNotApplicable  = errors.New("advance payment not applicable")
)
