package application

import (
	"context"
	"testing"

	"github.com/prostore/storefront/internal/cart/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCartRepository struct {
	carts       map[string]*domain.Cart
	savedCart   *domain.Cart
	removedItem uint
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartRepository) Save(_ context.Context, cart *domain.Cart) error {
	m.savedCart = cart
	return nil
}

func (m *mockCartRepository) GetByUserID(_ context.Context, userID uint) (*domain.Cart, error) {
	for _, c := range m.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, domain.ErrCartNotFound
}

func (m *mockCartRepository) GetBySessionID(_ context.Context, sessionCartID string) (*domain.Cart, error) {
	if c, ok := m.carts[sessionCartID]; ok {
		return c, nil
	}
	return nil, domain.ErrCartNotFound
}

func (m *mockCartRepository) RemoveItem(_ context.Context, itemID uint) error {
	m.removedItem = itemID
	return nil
}

func (m *mockCartRepository) Clear(_ context.Context, _ uint) error { return nil }

func (m *mockCartRepository) DeleteByUserID(_ context.Context, _ uint) error { return nil }

func (m *mockCartRepository) RebindToUser(_ context.Context, _ string, _ uint) error { return nil }

type mockProductGateway struct {
	products    map[uint]*ProductInfo
	invalidated []string
}

func (m *mockProductGateway) GetByID(_ context.Context, id uint) (*ProductInfo, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockProductGateway) InvalidateCache(_ context.Context, slug string) error {
	m.invalidated = append(m.invalidated, slug)
	return nil
}

func newTestGateway() *mockProductGateway {
	return &mockProductGateway{products: map[uint]*ProductInfo{
		1: {ID: 1, Name: "Polo Shirt", Slug: "polo-shirt", Image: "/images/polo.jpg",
			Price: decimal.RequireFromString("25.00"), Stock: 5},
		2: {ID: 2, Name: "Hoodie", Slug: "hoodie", Image: "/images/hoodie.jpg",
			Price: decimal.RequireFromString("60.00"), Stock: 1},
	}}
}

func TestAddItem_NewCart(t *testing.T) {
	repo := newMockCartRepository()
	gateway := newTestGateway()
	svc := NewCartCommandService(repo, gateway, nil, nil)

	msg, err := svc.AddItem(context.Background(), AddItemCommand{
		Identity:  CartIdentity{SessionCartID: "session-1"},
		ProductID: 1,
		Qty:       2,
	})

	require.NoError(t, err)
	assert.Equal(t, "Polo Shirt added to cart", msg)
	require.NotNil(t, repo.savedCart)
	require.Len(t, repo.savedCart.Items, 1)
	assert.Equal(t, 2, repo.savedCart.Items[0].Qty)
	assert.Equal(t, "50.00", repo.savedCart.ItemsPrice.StringFixed(2))
	assert.Equal(t, "10.00", repo.savedCart.ShippingPrice.StringFixed(2))
	assert.Equal(t, "7.50", repo.savedCart.TaxPrice.StringFixed(2))
	assert.Equal(t, "67.50", repo.savedCart.TotalPrice.StringFixed(2))
	assert.Equal(t, []string{"polo-shirt"}, gateway.invalidated)
}

func TestAddItem_SignedInUserNewCartBindsUserOnly(t *testing.T) {
	repo := newMockCartRepository()
	svc := NewCartCommandService(repo, newTestGateway(), nil, nil)

	_, err := svc.AddItem(context.Background(), AddItemCommand{
		Identity:  CartIdentity{UserID: 7, SessionCartID: "session-1"},
		ProductID: 1,
		Qty:       1,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.savedCart)
	assert.Equal(t, uint(7), repo.savedCart.UserID)
	assert.Empty(t, repo.savedCart.SessionCartID)
}

func TestAddItem_ExistingItemIncrementsQty(t *testing.T) {
	repo := newMockCartRepository()
	repo.carts["session-1"] = &domain.Cart{
		SessionCartID: "session-1",
		Items: []domain.CartItem{
			{ProductID: 1, Name: "Polo Shirt", Price: decimal.RequireFromString("25.00"), Qty: 1},
		},
	}
	svc := NewCartCommandService(repo, newTestGateway(), nil, nil)

	msg, err := svc.AddItem(context.Background(), AddItemCommand{
		Identity:  CartIdentity{SessionCartID: "session-1"},
		ProductID: 1,
		Qty:       1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Polo Shirt updated in cart", msg)
	require.Len(t, repo.savedCart.Items, 1)
	assert.Equal(t, 2, repo.savedCart.Items[0].Qty)
}

func TestAddItem_OutOfStock(t *testing.T) {
	repo := newMockCartRepository()
	svc := NewCartCommandService(repo, newTestGateway(), nil, nil)

	_, err := svc.AddItem(context.Background(), AddItemCommand{
		Identity:  CartIdentity{SessionCartID: "session-1"},
		ProductID: 2,
		Qty:       3,
	})

	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Nil(t, repo.savedCart)
}

func TestAddItem_ExistingQtyPlusRequestExceedsStock(t *testing.T) {
	repo := newMockCartRepository()
	repo.carts["session-1"] = &domain.Cart{
		SessionCartID: "session-1",
		Items: []domain.CartItem{
			{ProductID: 2, Name: "Hoodie", Price: decimal.RequireFromString("60.00"), Qty: 1},
		},
	}
	svc := NewCartCommandService(repo, newTestGateway(), nil, nil)

	_, err := svc.AddItem(context.Background(), AddItemCommand{
		Identity:  CartIdentity{SessionCartID: "session-1"},
		ProductID: 2,
		Qty:       1,
	})

	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestAddItem_ProductNotFound(t *testing.T) {
	repo := newMockCartRepository()
	svc := NewCartCommandService(repo, newTestGateway(), nil, nil)

	_, err := svc.AddItem(context.Background(), AddItemCommand{
		Identity:  CartIdentity{SessionCartID: "session-1"},
		ProductID: 99,
		Qty:       1,
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRemoveItem_DecrementsQty(t *testing.T) {
	repo := newMockCartRepository()
	repo.carts["session-1"] = &domain.Cart{
		SessionCartID: "session-1",
		Items: []domain.CartItem{
			{ProductID: 1, Name: "Polo Shirt", Price: decimal.RequireFromString("25.00"), Qty: 2},
		},
	}
	svc := NewCartCommandService(repo, newTestGateway(), nil, nil)

	msg, err := svc.RemoveItem(context.Background(), RemoveItemCommand{
		Identity:  CartIdentity{SessionCartID: "session-1"},
		ProductID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Polo Shirt updated in cart", msg)
	require.Len(t, repo.savedCart.Items, 1)
	assert.Equal(t, 1, repo.savedCart.Items[0].Qty)
	assert.Equal(t, "25.00", repo.savedCart.ItemsPrice.StringFixed(2))
}

func TestRemoveItem_LastUnitRemovesLine(t *testing.T) {
	repo := newMockCartRepository()
	repo.carts["session-1"] = &domain.Cart{
		SessionCartID: "session-1",
		Items: []domain.CartItem{
			{ProductID: 1, Name: "Polo Shirt", Slug: "polo-shirt", Price: decimal.RequireFromString("25.00"), Qty: 1},
		},
	}
	gateway := newTestGateway()
	svc := NewCartCommandService(repo, gateway, nil, nil)

	msg, err := svc.RemoveItem(context.Background(), RemoveItemCommand{
		Identity:  CartIdentity{SessionCartID: "session-1"},
		ProductID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Polo Shirt removed from cart", msg)
	assert.Empty(t, repo.savedCart.Items)
	assert.Equal(t, "0.00", repo.savedCart.TotalPrice.StringFixed(2))
	assert.Equal(t, []string{"polo-shirt"}, gateway.invalidated)
}

func TestRemoveItem_NotInCart(t *testing.T) {
	repo := newMockCartRepository()
	repo.carts["session-1"] = &domain.Cart{SessionCartID: "session-1"}
	svc := NewCartCommandService(repo, newTestGateway(), nil, nil)

	_, err := svc.RemoveItem(context.Background(), RemoveItemCommand{
		Identity:  CartIdentity{SessionCartID: "session-1"},
		ProductID: 1,
	})

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetCart_MissingReturnsEmpty(t *testing.T) {
	repo := newMockCartRepository()
	svc := NewCartQueryService(repo)

	cart, err := svc.GetCart(context.Background(), CartIdentity{SessionCartID: "nope"})

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "nope", cart.SessionCartID)
}
