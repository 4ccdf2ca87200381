package gateway

import (
	"context"

	orderdomain "github.com/prostore/storefront/internal/order/domain"
	"github.com/prostore/storefront/internal/review/application"
)

type purchaseChecker struct {
	orders orderdomain.OrderRepository
}

// NewPurchaseChecker 创建购买记录校验实例
func NewPurchaseChecker(orders orderdomain.OrderRepository) application.PurchaseChecker {
	return &purchaseChecker{orders: orders}
}

func (g *purchaseChecker) HasUserPurchased(ctx context.Context, userID, productID uint) (bool, error) {
	return g.orders.HasUserPurchased(ctx, userID, productID)
}
