package application

import (
	"context"

	"github.com/prostore/storefront/internal/catalog/domain"
	"github.com/prostore/storefront/pkg/logger"
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	repo  domain.ProductRepository
	cache ProductCache
}

// NewCatalogQueryService 创建商品目录查询服务实例
func NewCatalogQueryService(repo domain.ProductRepository, cache ProductCache) *CatalogQueryService {
	return &CatalogQueryService{repo: repo, cache: cache}
}

// GetProductBySlug 根据 slug 获取商品详情，优先读缓存
func (s *CatalogQueryService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetBySlug(ctx, slug); err == nil && cached != nil {
			return cached, nil
		}
	}

	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			logger.Warn(ctx, "Failed to cache product", "slug", slug, "error", err)
		}
	}

	return product, nil
}

// GetProductByID 根据 ID 获取商品
func (s *CatalogQueryService) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts 分页获取商品列表
func (s *CatalogQueryService) ListProducts(ctx context.Context, category string, page, pageSize int) ([]*domain.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	return s.repo.List(ctx, category, offset, pageSize)
}

// ListLatestProducts 获取最新上架商品
func (s *CatalogQueryService) ListLatestProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	return s.repo.ListLatest(ctx, limit)
}

// CountProducts 商品总数
func (s *CatalogQueryService) CountProducts(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
