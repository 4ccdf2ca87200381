package gateway

import (
	"context"
	"errors"

	cartdomain "github.com/prostore/storefront/internal/cart/domain"
	"github.com/prostore/storefront/internal/order/application"
	orderdomain "github.com/prostore/storefront/internal/order/domain"
)

type cartGateway struct {
	repo cartdomain.CartRepository
}

// NewCartGateway 创建购物车防腐层实例
func NewCartGateway(repo cartdomain.CartRepository) application.CartGateway {
	return &cartGateway{repo: repo}
}

func (g *cartGateway) GetByUser(ctx context.Context, userID uint) (*application.CartSnapshot, error) {
	cart, err := g.repo.GetByUserID(ctx, userID)
	if errors.Is(err, cartdomain.ErrCartNotFound) {
		return nil, orderdomain.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	snapshot := &application.CartSnapshot{
		ID:            cart.ID,
		ItemsPrice:    cart.ItemsPrice,
		ShippingPrice: cart.ShippingPrice,
		TaxPrice:      cart.TaxPrice,
		TotalPrice:    cart.TotalPrice,
	}
	for i := range cart.Items {
		item := &cart.Items[i]
		snapshot.Items = append(snapshot.Items, application.CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}
	return snapshot, nil
}

func (g *cartGateway) Clear(ctx context.Context, cartID uint) error {
	return g.repo.Clear(ctx, cartID)
}
