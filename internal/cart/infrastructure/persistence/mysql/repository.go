package mysql

import (
	"context"
	"errors"

	"github.com/prostore/storefront/internal/cart/domain"
	pkgdb "github.com/prostore/storefront/pkg/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储实例
func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return pkgdb.FromContext(ctx, r.db).Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := pkgdb.FromContext(ctx, r.db).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) GetBySessionID(ctx context.Context, sessionCartID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := pkgdb.FromContext(ctx, r.db).
		Preload("Items").
		Where("session_cart_id = ? AND user_id = 0", sessionCartID).
		Order("created_at DESC").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, itemID uint) error {
	return pkgdb.FromContext(ctx, r.db).Delete(&domain.CartItem{}, itemID).Error
}

func (r *cartRepository) Clear(ctx context.Context, cartID uint) error {
	db := pkgdb.FromContext(ctx, r.db)
	if err := db.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
		return err
	}
	zero := decimal.Zero
	return db.Model(&domain.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"items_price":    zero,
		"shipping_price": zero,
		"tax_price":      zero,
		"total_price":    zero,
	}).Error
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	db := pkgdb.FromContext(ctx, r.db)
	var carts []domain.Cart
	if err := db.Where("user_id = ?", userID).Find(&carts).Error; err != nil {
		return err
	}
	for i := range carts {
		if err := db.Where("cart_id = ?", carts[i].ID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		if err := db.Delete(&domain.Cart{}, carts[i].ID).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *cartRepository) RebindToUser(ctx context.Context, sessionCartID string, userID uint) error {
	return pkgdb.FromContext(ctx, r.db).Model(&domain.Cart{}).
		Where("session_cart_id = ? AND user_id = 0", sessionCartID).
		Update("user_id", userID).Error
}
