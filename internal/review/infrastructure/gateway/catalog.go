package gateway

import (
	"context"

	catalogapp "github.com/prostore/storefront/internal/catalog/application"
	catalogdomain "github.com/prostore/storefront/internal/catalog/domain"
	"github.com/prostore/storefront/internal/review/application"
	reviewdomain "github.com/prostore/storefront/internal/review/domain"
	"github.com/shopspring/decimal"
)

type catalogGateway struct {
	repo  catalogdomain.ProductRepository
	cache catalogapp.ProductCache
}

// NewCatalogGateway 创建商品目录防腐层实例
func NewCatalogGateway(repo catalogdomain.ProductRepository, cache catalogapp.ProductCache) application.ProductGateway {
	return &catalogGateway{repo: repo, cache: cache}
}

func (g *catalogGateway) Exists(ctx context.Context, productID uint) (string, error) {
	product, err := g.repo.GetByID(ctx, productID)
	if err != nil {
		return "", reviewdomain.ErrProductNotFound
	}
	return product.Slug, nil
}

func (g *catalogGateway) UpdateRating(ctx context.Context, productID uint, rating decimal.Decimal, numReviews int) error {
	return g.repo.UpdateRating(ctx, productID, rating, numReviews)
}

func (g *catalogGateway) InvalidateCache(ctx context.Context, slug string) error {
	if g.cache == nil {
		return nil
	}
	return g.cache.Invalidate(ctx, slug)
}
