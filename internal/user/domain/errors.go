package domain

import "errors"

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole 不支持的角色
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidPaymentMethod 不支持的支付方式
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
