package cache

import (
	"context"
	"time"

	"github.com/prostore/storefront/internal/catalog/application"
	"github.com/prostore/storefront/internal/catalog/domain"
	pkgcache "github.com/prostore/storefront/pkg/cache"
)

const keyPrefix = "product:slug:"

type productCache struct {
	redis *pkgcache.RedisCache
	ttl   time.Duration
}

// NewProductCache 创建商品详情 Redis 缓存
func NewProductCache(redis *pkgcache.RedisCache, ttl time.Duration) application.ProductCache {
	return &productCache{redis: redis, ttl: ttl}
}

func (c *productCache) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product
	if err := c.redis.GetJSON(ctx, keyPrefix+slug, &product); err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (c *productCache) Set(ctx context.Context, product *domain.Product) error {
	return c.redis.SetJSON(ctx, keyPrefix+product.Slug, product, c.ttl)
}

func (c *productCache) Invalidate(ctx context.Context, slug string) error {
	return c.redis.Delete(ctx, keyPrefix+slug)
}
