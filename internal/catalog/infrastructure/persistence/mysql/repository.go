package mysql

import (
	"context"
	"errors"

	"github.com/prostore/storefront/internal/catalog/domain"
	pkgdb "github.com/prostore/storefront/pkg/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return pkgdb.FromContext(ctx, r.db).Save(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := pkgdb.FromContext(ctx, r.db).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	err := pkgdb.FromContext(ctx, r.db).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, category string, offset, limit int) ([]*domain.Product, int64, error) {
	var products []*domain.Product
	var total int64
	q := pkgdb.FromContext(ctx, r.db).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error
	return products, total, err
}

func (r *productRepository) ListLatest(ctx context.Context, limit int) ([]*domain.Product, error) {
	var products []*domain.Product
	err := pkgdb.FromContext(ctx, r.db).Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	res := pkgdb.FromContext(ctx, r.db).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id uint, qty int) error {
	res := pkgdb.FromContext(ctx, r.db).Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := pkgdb.FromContext(ctx, r.db).Model(&domain.Product{}).Count(&total).Error
	return total, err
}

func (r *productRepository) UpdateRating(ctx context.Context, id uint, rating decimal.Decimal, numReviews int) error {
	return pkgdb.FromContext(ctx, r.db).Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":      rating,
			"num_reviews": numReviews,
		}).Error
}
