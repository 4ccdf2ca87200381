package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prostore/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

// PayPalConfig PayPal 客户端配置
type PayPalConfig struct {
	APIBase      string
	ClientID     string
	ClientSecret string
}

// PayPalClient PayPal REST 客户端，访问令牌在进程内缓存
type PayPalClient struct {
	client *resty.Client
	config PayPalConfig

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalClient 创建 PayPal 客户端实例
func NewPayPalClient(config PayPalConfig) domain.PayPalProvider {
	client := resty.New().
		SetBaseURL(config.APIBase).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &PayPalClient{client: client, config: config}
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				Amount struct {
					Value string `json:"value"`
				} `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// CreateOrder 创建 PayPal 订单
func (p *PayPalClient) CreateOrder(ctx context.Context, totalPrice decimal.Decimal) (string, error) {
	token, err := p.token(ctx)
	if err != nil {
		return "", err
	}

	var result paypalOrderResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]interface{}{
			"intent": "CAPTURE",
			"purchase_units": []map[string]interface{}{
				{
					"amount": map[string]string{
						"currency_code": "USD",
						"value":         totalPrice.StringFixed(2),
					},
				},
			},
		}).
		SetResult(&result).
		Post("/v2/checkout/orders")
	if err != nil {
		return "", fmt.Errorf("paypal create order request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("paypal create order failed: status %d: %s", resp.StatusCode(), resp.String())
	}
	return result.ID, nil
}

// CaptureOrder 捕获 PayPal 订单付款
func (p *PayPalClient) CaptureOrder(ctx context.Context, paypalOrderID string) (*domain.CaptureResult, error) {
	token, err := p.token(ctx)
	if err != nil {
		return nil, err
	}

	var result paypalOrderResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetResult(&result).
		Post(fmt.Sprintf("/v2/checkout/orders/%s/capture", paypalOrderID))
	if err != nil {
		return nil, fmt.Errorf("paypal capture request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("paypal capture failed: status %d: %s", resp.StatusCode(), resp.String())
	}

	pricePaid := decimal.Zero
	if len(result.PurchaseUnits) > 0 && len(result.PurchaseUnits[0].Payments.Captures) > 0 {
		if v, err := decimal.NewFromString(result.PurchaseUnits[0].Payments.Captures[0].Amount.Value); err == nil {
			pricePaid = v
		}
	}

	return &domain.CaptureResult{
		ID:           result.ID,
		Status:       result.Status,
		EmailAddress: result.Payer.EmailAddress,
		PricePaid:    pricePaid,
	}, nil
}

func (p *PayPalClient) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	var result paypalTokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.config.ClientID, p.config.ClientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&result).
		Post("/v1/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("paypal token request failed: status %d", resp.StatusCode())
	}

	p.accessToken = result.AccessToken
	// 提前一分钟过期，避免边界上用到失效令牌
	p.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-60) * time.Second)
	return p.accessToken, nil
}
