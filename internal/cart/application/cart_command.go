package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prostore/storefront/internal/cart/domain"
	"github.com/prostore/storefront/internal/pricing"
	"github.com/prostore/storefront/pkg/logger"
)

// TxRunner 事务执行接口，由 pkg/db 提供实现
type TxRunner interface {
	WithTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// CartIdentity 购物车归属标识，登录用户取 UserID，匿名取 SessionCartID
type CartIdentity struct {
	UserID        uint
	SessionCartID string
}

// AddItemCommand 加购命令
type AddItemCommand struct {
	Identity  CartIdentity
	ProductID uint
	Qty       int
}

// RemoveItemCommand 减购命令
type RemoveItemCommand struct {
	Identity  CartIdentity
	ProductID uint
}

// CartCommandService 购物车命令服务
type CartCommandService struct {
	repo      domain.CartRepository
	products  ProductGateway
	db        TxRunner
	publisher domain.EventPublisher
}

// NewCartCommandService 创建购物车命令服务实例
func NewCartCommandService(
	repo domain.CartRepository,
	products ProductGateway,
	db TxRunner,
	publisher domain.EventPublisher,
) *CartCommandService {
	return &CartCommandService{
		repo:      repo,
		products:  products,
		db:        db,
		publisher: publisher,
	}
}

// AddItem 加购：已有条目累加数量，否则按商品快照新增条目，随后重算价格
func (s *CartCommandService) AddItem(ctx context.Context, cmd AddItemCommand) (string, error) {
	if cmd.Qty <= 0 {
		cmd.Qty = 1
	}

	product, err := s.products.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return "", err
	}

	cart, err := s.resolveOrCreate(ctx, cmd.Identity)
	if err != nil {
		return "", err
	}

	message := fmt.Sprintf("%s added to cart", product.Name)
	if idx := cart.FindItem(product.ID); idx >= 0 {
		newQty := cart.Items[idx].Qty + cmd.Qty
		if product.Stock < newQty {
			return "", domain.ErrOutOfStock
		}
		cart.Items[idx].Qty = newQty
		message = fmt.Sprintf("%s updated in cart", product.Name)
	} else {
		if product.Stock < cmd.Qty {
			return "", domain.ErrOutOfStock
		}
		cart.Items = append(cart.Items, domain.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Slug:      product.Slug,
			Image:     product.Image,
			Price:     product.Price,
			Qty:       cmd.Qty,
		})
	}

	s.reprice(cart)

	if err := s.repo.Save(ctx, cart); err != nil {
		return "", err
	}
	s.invalidateProduct(ctx, product.Slug)

	if s.publisher != nil {
		event := domain.CartItemAddedEvent{
			CartID:    cart.ID,
			UserID:    cart.UserID,
			ProductID: product.ID,
			Slug:      product.Slug,
			Qty:       cmd.Qty,
			Price:     product.Price.StringFixed(2),
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, "cart.item.added", product.Slug, event)
	}

	return message, nil
}

// RemoveItem 减购：数量大于 1 减一件，否则整条移除，随后重算价格
func (s *CartCommandService) RemoveItem(ctx context.Context, cmd RemoveItemCommand) (string, error) {
	cart, err := s.resolve(ctx, cmd.Identity)
	if err != nil {
		return "", err
	}

	idx := cart.FindItem(cmd.ProductID)
	if idx < 0 {
		return "", domain.ErrItemNotFound
	}

	item := cart.Items[idx]
	message := fmt.Sprintf("%s updated in cart", item.Name)
	if item.Qty > 1 {
		cart.Items[idx].Qty--
	} else {
		if err := s.repo.RemoveItem(ctx, item.ID); err != nil {
			return "", err
		}
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		message = fmt.Sprintf("%s removed from cart", item.Name)
	}

	s.reprice(cart)

	if err := s.repo.Save(ctx, cart); err != nil {
		return "", err
	}
	s.invalidateProduct(ctx, item.Slug)

	if s.publisher != nil {
		event := domain.CartItemRemovedEvent{
			CartID:    cart.ID,
			UserID:    cart.UserID,
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Qty:       1,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, "cart.item.removed", item.Slug, event)
	}

	return message, nil
}

// RebindToUser 登录后将会话购物车改绑到用户，用户旧购物车先删除
func (s *CartCommandService) RebindToUser(ctx context.Context, sessionCartID string, userID uint) error {
	if sessionCartID == "" {
		return nil
	}

	if _, err := s.repo.GetBySessionID(ctx, sessionCartID); err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil
		}
		return err
	}

	return s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteByUserID(txCtx, userID); err != nil {
			return err
		}
		return s.repo.RebindToUser(txCtx, sessionCartID, userID)
	})
}

func (s *CartCommandService) resolve(ctx context.Context, identity CartIdentity) (*domain.Cart, error) {
	if identity.UserID != 0 {
		return s.repo.GetByUserID(ctx, identity.UserID)
	}
	if identity.SessionCartID == "" {
		return nil, domain.ErrCartNotFound
	}
	return s.repo.GetBySessionID(ctx, identity.SessionCartID)
}

func (s *CartCommandService) resolveOrCreate(ctx context.Context, identity CartIdentity) (*domain.Cart, error) {
	cart, err := s.resolve(ctx, identity)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return nil, err
	}

	logger.Debug(ctx, "Creating new cart",
		"user_id", identity.UserID, "session_cart_id", identity.SessionCartID)
	// 购物车只允许一种归属：登录用户的新购物车不携带会话标识
	if identity.UserID != 0 {
		return &domain.Cart{UserID: identity.UserID}, nil
	}
	return &domain.Cart{SessionCartID: identity.SessionCartID}, nil
}

func (s *CartCommandService) invalidateProduct(ctx context.Context, slug string) {
	if err := s.products.InvalidateCache(ctx, slug); err != nil {
		logger.Warn(ctx, "Failed to invalidate product cache", "slug", slug, "error", err)
	}
}

func (s *CartCommandService) reprice(cart *domain.Cart) {
	lines := make([]pricing.Line, 0, len(cart.Items))
	for i := range cart.Items {
		lines = append(lines, pricing.Line{
			UnitPrice: cart.Items[i].Price,
			Qty:       cart.Items[i].Qty,
		})
	}
	prices := pricing.CalcPrices(lines)
	cart.ItemsPrice = prices.Items
	cart.ShippingPrice = prices.Shipping
	cart.TaxPrice = prices.Tax
	cart.TotalPrice = prices.Total
}
