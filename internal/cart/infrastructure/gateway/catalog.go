package gateway

import (
	"context"
	"errors"

	"github.com/prostore/storefront/internal/cart/application"
	cartdomain "github.com/prostore/storefront/internal/cart/domain"
	catalogapp "github.com/prostore/storefront/internal/catalog/application"
	catalogdomain "github.com/prostore/storefront/internal/catalog/domain"
)

type catalogGateway struct {
	catalog *catalogapp.CatalogApplicationService
	cache   catalogapp.ProductCache
}

// NewCatalogGateway 创建商品目录防腐层实例
func NewCatalogGateway(catalog *catalogapp.CatalogApplicationService, cache catalogapp.ProductCache) application.ProductGateway {
	return &catalogGateway{catalog: catalog, cache: cache}
}

func (g *catalogGateway) GetByID(ctx context.Context, id uint) (*application.ProductInfo, error) {
	product, err := g.catalog.GetProductByID(ctx, id)
	if errors.Is(err, catalogdomain.ErrProductNotFound) {
		return nil, cartdomain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	return &application.ProductInfo{
		ID:    product.ID,
		Name:  product.Name,
		Slug:  product.Slug,
		Image: image,
		Price: product.Price,
		Stock: product.Stock,
	}, nil
}

func (g *catalogGateway) InvalidateCache(ctx context.Context, slug string) error {
	if g.cache == nil {
		return nil
	}
	return g.cache.Invalidate(ctx, slug)
}
