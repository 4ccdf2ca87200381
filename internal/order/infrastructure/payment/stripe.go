package payment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prostore/storefront/internal/order/domain"
)

// StripeConfig Stripe 客户端配置
type StripeConfig struct {
	APIBase   string
	SecretKey string
}

// StripeClient Stripe REST 客户端
type StripeClient struct {
	client *resty.Client
}

// NewStripeClient 创建 Stripe 客户端实例
func NewStripeClient(config StripeConfig) domain.StripeProvider {
	client := resty.New().
		SetBaseURL(config.APIBase).
		SetTimeout(10 * time.Second).
		SetAuthToken(config.SecretKey)
	return &StripeClient{client: client}
}

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// CreatePaymentIntent 创建 Stripe 支付意图
func (s *StripeClient) CreatePaymentIntent(ctx context.Context, amountCents int64, orderID string) (string, string, error) {
	var result stripeIntentResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"amount":            strconv.FormatInt(amountCents, 10),
			"currency":          "usd",
			"metadata[orderId]": orderID,
		}).
		SetResult(&result).
		Post("/v1/payment_intents")
	if err != nil {
		return "", "", fmt.Errorf("stripe payment intent request failed: %w", err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("stripe payment intent failed: status %d: %s", resp.StatusCode(), resp.String())
	}
	return result.ID, result.ClientSecret, nil
}
