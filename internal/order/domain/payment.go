package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CaptureResult 支付捕获结果
type CaptureResult struct {
	ID           string
	Status       string
	EmailAddress string
	PricePaid    decimal.Decimal
}

// PayPalProvider PayPal 支付网关接口
type PayPalProvider interface {
	// CreateOrder 创建 PayPal 订单，返回网关订单 ID
	CreateOrder(ctx context.Context, totalPrice decimal.Decimal) (string, error)
	// CaptureOrder 捕获 PayPal 订单付款
	CaptureOrder(ctx context.Context, paypalOrderID string) (*CaptureResult, error)
}

// StripeProvider Stripe 支付网关接口
type StripeProvider interface {
	// CreatePaymentIntent 创建支付意图，金额单位为美分，返回意图 ID 与客户端密钥
	CreatePaymentIntent(ctx context.Context, amountCents int64, orderID string) (intentID, clientSecret string, err error)
}
