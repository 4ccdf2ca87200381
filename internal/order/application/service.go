package application

import (
	"context"

	"github.com/prostore/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

// CartLine 下单用的购物车条目快照
type CartLine struct {
	ProductID uint
	Name      string
	Slug      string
	Image     string
	Price     decimal.Decimal
	Qty       int
}

// CartSnapshot 下单用的购物车快照
type CartSnapshot struct {
	ID            uint
	Items         []CartLine
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal
}

// CartGateway 购物车上下文防腐层接口
type CartGateway interface {
	// GetByUser 获取用户购物车快照，不存在返回 ErrEmptyCart
	GetByUser(ctx context.Context, userID uint) (*CartSnapshot, error)
	// Clear 清空购物车
	Clear(ctx context.Context, cartID uint) error
}

// CustomerInfo 下单用的用户信息快照
type CustomerInfo struct {
	ID            uint
	Name          string
	Email         string
	Address       *domain.Address
	PaymentMethod string
}

// UserGateway 用户上下文防腐层接口
type UserGateway interface {
	// Get 获取用户信息快照
	Get(ctx context.Context, userID uint) (*CustomerInfo, error)
	// Count 用户总数
	Count(ctx context.Context) (int64, error)
}

// CatalogGateway 商品目录防腐层接口
type CatalogGateway interface {
	// DecrementStock 扣减库存
	DecrementStock(ctx context.Context, productID uint, qty int) error
	// Count 商品总数
	Count(ctx context.Context) (int64, error)
}

// OrderApplicationService 订单应用服务门面
type OrderApplicationService struct {
	*OrderCommandService
	*OrderQueryService
}

// NewOrderApplicationService 创建订单应用服务实例
func NewOrderApplicationService(
	command *OrderCommandService,
	query *OrderQueryService,
) *OrderApplicationService {
	return &OrderApplicationService{
		OrderCommandService: command,
		OrderQueryService:   query,
	}
}
