package mysql

import (
	"context"
	"errors"

	"github.com/prostore/storefront/internal/order/domain"
	pkgdb "github.com/prostore/storefront/pkg/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	return pkgdb.FromContext(ctx, r.db).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := pkgdb.FromContext(ctx, r.db).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*domain.Order, int64, error) {
	db := pkgdb.FromContext(ctx, r.db)

	var total int64
	if err := db.Model(&domain.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*domain.Order
	err := db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) List(ctx context.Context, offset, limit int) ([]*domain.Order, int64, error) {
	db := pkgdb.FromContext(ctx, r.db)

	var total int64
	if err := db.Model(&domain.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*domain.Order
	err := db.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	db := pkgdb.FromContext(ctx, r.db)
	res := db.Where("id = ?", id).Delete(&domain.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return db.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := pkgdb.FromContext(ctx, r.db).Model(&domain.Order{}).Count(&total).Error
	return total, err
}

func (r *orderRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := pkgdb.FromContext(ctx, r.db).Model(&domain.Order{}).
		Select("COALESCE(SUM(total_price), 0) AS total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *orderRepository) HasUserPurchased(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := pkgdb.FromContext(ctx, r.db).Model(&domain.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.is_paid = ?", userID, productID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *orderRepository) SalesByMonth(ctx context.Context) ([]domain.SalesPoint, error) {
	var points []domain.SalesPoint
	err := pkgdb.FromContext(ctx, r.db).Model(&domain.Order{}).
		Select("DATE_FORMAT(created_at, '%m/%y') AS month, SUM(total_price) AS total_sales").
		Group("month").
		Order("MIN(created_at)").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}
