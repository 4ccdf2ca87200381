package application

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductInfo 加购所需的商品快照
type ProductInfo struct {
	ID    uint
	Name  string
	Slug  string
	Image string
	Price decimal.Decimal
	Stock int
}

// ProductGateway 商品目录防腐层接口
type ProductGateway interface {
	// GetByID 获取商品快照
	GetByID(ctx context.Context, id uint) (*ProductInfo, error)
	// InvalidateCache 失效商品详情缓存
	InvalidateCache(ctx context.Context, slug string) error
}

// CartApplicationService 购物车应用服务门面
type CartApplicationService struct {
	*CartCommandService
	*CartQueryService
}

// NewCartApplicationService 创建购物车应用服务实例
func NewCartApplicationService(
	command *CartCommandService,
	query *CartQueryService,
) *CartApplicationService {
	return &CartApplicationService{
		CartCommandService: command,
		CartQueryService:   query,
	}
}
