package application

import (
	"context"

	"github.com/prostore/storefront/internal/catalog/domain"
)

// ProductCache 商品详情缓存端口。加购/评价等写路径通过 Invalidate 使缓存失效。
type ProductCache interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Invalidate(ctx context.Context, slug string) error
}

// CatalogApplicationService 商品目录服务门面，整合命令服务和查询服务
type CatalogApplicationService struct {
	commandService *CatalogCommandService
	queryService   *CatalogQueryService
}

// NewCatalogApplicationService 创建商品目录服务门面实例
func NewCatalogApplicationService(
	repo domain.ProductRepository,
	cache ProductCache,
	publisher domain.EventPublisher,
) *CatalogApplicationService {
	return &CatalogApplicationService{
		commandService: NewCatalogCommandService(repo, cache, publisher),
		queryService:   NewCatalogQueryService(repo, cache),
	}
}

// GetProductBySlug 根据 slug 获取商品详情
func (s *CatalogApplicationService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.queryService.GetProductBySlug(ctx, slug)
}

// GetProductByID 根据 ID 获取商品
func (s *CatalogApplicationService) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	return s.queryService.GetProductByID(ctx, id)
}

// ListProducts 分页获取商品列表
func (s *CatalogApplicationService) ListProducts(ctx context.Context, category string, page, pageSize int) ([]*domain.Product, int64, error) {
	return s.queryService.ListProducts(ctx, category, page, pageSize)
}

// ListLatestProducts 获取最新上架商品
func (s *CatalogApplicationService) ListLatestProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	return s.queryService.ListLatestProducts(ctx, limit)
}

// CreateProduct 处理创建商品
func (s *CatalogApplicationService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uint, error) {
	return s.commandService.CreateProduct(ctx, cmd)
}

// UpdateProduct 处理更新商品
func (s *CatalogApplicationService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error {
	return s.commandService.UpdateProduct(ctx, cmd)
}

// DeleteProduct 处理删除商品
func (s *CatalogApplicationService) DeleteProduct(ctx context.Context, id uint) error {
	return s.commandService.DeleteProduct(ctx, id)
}
