package gateway

import (
	"context"

	catalogdomain "github.com/prostore/storefront/internal/catalog/domain"
	"github.com/prostore/storefront/internal/order/application"
)

type catalogGateway struct {
	repo catalogdomain.ProductRepository
}

// NewCatalogGateway 创建商品目录防腐层实例
func NewCatalogGateway(repo catalogdomain.ProductRepository) application.CatalogGateway {
	return &catalogGateway{repo: repo}
}

func (g *catalogGateway) DecrementStock(ctx context.Context, productID uint, qty int) error {
	return g.repo.DecrementStock(ctx, productID, qty)
}

func (g *catalogGateway) Count(ctx context.Context) (int64, error) {
	return g.repo.Count(ctx)
}
