package application

import (
	"context"
	"time"

	"github.com/prostore/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name        string
	Slug        string
	Category    string
	Brand       string
	Description string
	Images      []string
	Price       decimal.Decimal
	Stock       int
	IsFeatured  bool
	Banner      string
}

// UpdateProductCommand 更新商品命令
type UpdateProductCommand struct {
	ID          uint
	Name        string
	Slug        string
	Category    string
	Brand       string
	Description string
	Images      []string
	Price       decimal.Decimal
	Stock       int
	IsFeatured  bool
	Banner      string
}

// CatalogCommandService 商品目录命令服务
type CatalogCommandService struct {
	repo      domain.ProductRepository
	cache     ProductCache
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建商品目录命令服务实例
func NewCatalogCommandService(
	repo domain.ProductRepository,
	cache ProductCache,
	publisher domain.EventPublisher,
) *CatalogCommandService {
	return &CatalogCommandService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

// CreateProduct 处理创建商品
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uint, error) {
	product := &domain.Product{
		Name:        cmd.Name,
		Slug:        cmd.Slug,
		Category:    cmd.Category,
		Brand:       cmd.Brand,
		Description: cmd.Description,
		Images:      cmd.Images,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		IsFeatured:  cmd.IsFeatured,
		Banner:      cmd.Banner,
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return 0, err
	}

	if s.publisher != nil {
		event := domain.ProductCreatedEvent{
			ProductID: product.ID,
			Slug:      product.Slug,
			Name:      product.Name,
			Price:     product.Price.StringFixed(2),
			Stock:     product.Stock,
			Category:  product.Category,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, "product.created", product.Slug, event)
	}

	return product.ID, nil
}

// UpdateProduct 处理更新商品
func (s *CatalogCommandService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error {
	product, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	oldSlug := product.Slug
	oldStock := product.Stock

	product.Name = cmd.Name
	product.Slug = cmd.Slug
	product.Category = cmd.Category
	product.Brand = cmd.Brand
	product.Description = cmd.Description
	product.Images = cmd.Images
	product.Price = cmd.Price
	product.Stock = cmd.Stock
	product.IsFeatured = cmd.IsFeatured
	product.Banner = cmd.Banner

	if err := s.repo.Save(ctx, product); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, oldSlug)
		if product.Slug != oldSlug {
			_ = s.cache.Invalidate(ctx, product.Slug)
		}
	}

	if s.publisher != nil {
		event := domain.ProductUpdatedEvent{
			ProductID: product.ID,
			Slug:      product.Slug,
			Name:      product.Name,
			Price:     product.Price.StringFixed(2),
			Stock:     product.Stock,
			Category:  product.Category,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, "product.updated", product.Slug, event)

		if oldStock != product.Stock {
			stockEvent := domain.ProductStockChangedEvent{
				ProductID: product.ID,
				OldStock:  oldStock,
				NewStock:  product.Stock,
				Timestamp: time.Now(),
			}
			_ = s.publisher.Publish(ctx, "product.stock.changed", product.Slug, stockEvent)
		}
	}

	return nil
}

// DeleteProduct 处理删除商品
func (s *CatalogCommandService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, product.Slug)
	}

	if s.publisher != nil {
		event := domain.ProductDeletedEvent{
			ProductID: product.ID,
			Slug:      product.Slug,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, "product.deleted", product.Slug, event)
	}

	return nil
}
