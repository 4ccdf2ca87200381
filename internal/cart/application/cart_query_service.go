package application

import (
	"context"
	"errors"

	"github.com/prostore/storefront/internal/cart/domain"
)

// CartQueryService 购物车查询服务
type CartQueryService struct {
	repo domain.CartRepository
}

// NewCartQueryService 创建购物车查询服务实例
func NewCartQueryService(repo domain.CartRepository) *CartQueryService {
	return &CartQueryService{repo: repo}
}

// GetCart 按归属标识获取购物车，不存在时返回空购物车
func (s *CartQueryService) GetCart(ctx context.Context, identity CartIdentity) (*domain.Cart, error) {
	var (
		cart *domain.Cart
		err  error
	)
	if identity.UserID != 0 {
		cart, err = s.repo.GetByUserID(ctx, identity.UserID)
	} else if identity.SessionCartID != "" {
		cart, err = s.repo.GetBySessionID(ctx, identity.SessionCartID)
	} else {
		err = domain.ErrCartNotFound
	}

	if errors.Is(err, domain.ErrCartNotFound) {
		return &domain.Cart{
			UserID:        identity.UserID,
			SessionCartID: identity.SessionCartID,
			Items:         []domain.CartItem{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}
