package mysql

import (
	"context"
	"errors"

	"github.com/prostore/storefront/internal/review/domain"
	pkgdb "github.com/prostore/storefront/pkg/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储实例
func NewReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Save(ctx context.Context, review *domain.Review) error {
	return pkgdb.FromContext(ctx, r.db).Save(review).Error
}

func (r *reviewRepository) GetByUserAndProduct(ctx context.Context, userID, productID uint) (*domain.Review, error) {
	var review domain.Review
	err := pkgdb.FromContext(ctx, r.db).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uint, offset, limit int) ([]*domain.Review, int64, error) {
	db := pkgdb.FromContext(ctx, r.db)

	var total int64
	if err := db.Model(&domain.Review{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []*domain.Review
	err := db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) Summarize(ctx context.Context, productID uint) (*domain.RatingSummary, error) {
	var result struct {
		Average decimal.Decimal
		Count   int
	}
	err := pkgdb.FromContext(ctx, r.db).Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return &domain.RatingSummary{Average: result.Average, Count: result.Count}, nil
}
