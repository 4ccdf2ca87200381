package domain

import "errors"

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyCart 购物车为空，无法下单
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoShippingAddress 用户未填写收货地址
	ErrNoShippingAddress = errors.New("no shipping address")
	// ErrNoPaymentMethod 用户未选择支付方式
	ErrNoPaymentMethod = errors.New("no payment method")
	// ErrAlreadyPaid 订单已支付
	ErrAlreadyPaid = errors.New("order is already paid")
	// ErrOrderNotPaid 订单未支付
	ErrOrderNotPaid = errors.New("order is not paid")
	// ErrAlreadyDelivered 订单已发货
	ErrAlreadyDelivered = errors.New("order is already delivered")
	// ErrPaymentMismatch 支付回执与订单不匹配
	ErrPaymentMismatch = errors.New("payment does not match order")
	// ErrInvalidPaymentMethod 不支持的支付方式
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	// ErrPermissionDenied 无权访问该订单
	ErrPermissionDenied = errors.New("permission denied")
)
