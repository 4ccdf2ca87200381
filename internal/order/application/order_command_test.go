package application

import (
	"context"
	"testing"

	authdomain "github.com/prostore/storefront/internal/auth/domain"
	"github.com/prostore/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type mockOrderRepository struct {
	orders map[string]*domain.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepository) Save(_ context.Context, order *domain.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (m *mockOrderRepository) ListByUser(_ context.Context, userID uint, _, _ int) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockOrderRepository) List(_ context.Context, _, _ int) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (m *mockOrderRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.orders)), nil
}

func (m *mockOrderRepository) TotalSales(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range m.orders {
		total = total.Add(o.TotalPrice)
	}
	return total, nil
}

func (m *mockOrderRepository) SalesByMonth(_ context.Context) ([]domain.SalesPoint, error) {
	return nil, nil
}

func (m *mockOrderRepository) HasUserPurchased(_ context.Context, userID, productID uint) (bool, error) {
	for _, o := range m.orders {
		if o.UserID != userID || !o.IsPaid {
			continue
		}
		for _, item := range o.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

type mockCartGateway struct {
	cart    *CartSnapshot
	cleared uint
}

func (m *mockCartGateway) GetByUser(_ context.Context, _ uint) (*CartSnapshot, error) {
	if m.cart == nil {
		return nil, domain.ErrEmptyCart
	}
	return m.cart, nil
}

func (m *mockCartGateway) Clear(_ context.Context, cartID uint) error {
	m.cleared = cartID
	return nil
}

type mockUserGateway struct {
	customer *CustomerInfo
}

func (m *mockUserGateway) Get(_ context.Context, _ uint) (*CustomerInfo, error) {
	return m.customer, nil
}

func (m *mockUserGateway) Count(_ context.Context) (int64, error) { return 1, nil }

type mockCatalogGateway struct {
	decrements map[uint]int
}

func (m *mockCatalogGateway) DecrementStock(_ context.Context, productID uint, qty int) error {
	if m.decrements == nil {
		m.decrements = make(map[uint]int)
	}
	m.decrements[productID] += qty
	return nil
}

func (m *mockCatalogGateway) Count(_ context.Context) (int64, error) { return 1, nil }

type mockPayPal struct {
	createdID string
	capture   *domain.CaptureResult
}

func (m *mockPayPal) CreateOrder(_ context.Context, _ decimal.Decimal) (string, error) {
	return m.createdID, nil
}

func (m *mockPayPal) CaptureOrder(_ context.Context, _ string) (*domain.CaptureResult, error) {
	return m.capture, nil
}

func testCustomer() *CustomerInfo {
	return &CustomerInfo{
		ID:    7,
		Name:  "Jane",
		Email: "jane@example.com",
		Address: &domain.Address{
			FullName:      "Jane Doe",
			StreetAddress: "123 Main St",
			City:          "Springfield",
			PostalCode:    "12345",
			Country:       "USA",
		},
		PaymentMethod: domain.PaymentMethodPayPal,
	}
}

func testCart() *CartSnapshot {
	return &CartSnapshot{
		ID: 3,
		Items: []CartLine{
			{ProductID: 1, Name: "Polo Shirt", Slug: "polo-shirt", Price: decimal.RequireFromString("25.00"), Qty: 2},
		},
		ItemsPrice:    decimal.RequireFromString("50.00"),
		ShippingPrice: decimal.RequireFromString("10.00"),
		TaxPrice:      decimal.RequireFromString("7.50"),
		TotalPrice:    decimal.RequireFromString("67.50"),
	}
}

func newCommandService(repo *mockOrderRepository, carts *mockCartGateway, users *mockUserGateway, catalog *mockCatalogGateway, paypal *mockPayPal) *OrderCommandService {
	return NewOrderCommandService(repo, carts, users, catalog, paypal, nil, passthroughTx{}, nil)
}

func TestCreateOrder_SnapshotsCartAndClearsIt(t *testing.T) {
	repo := newMockOrderRepository()
	carts := &mockCartGateway{cart: testCart()}
	users := &mockUserGateway{customer: testCustomer()}
	svc := newCommandService(repo, carts, users, &mockCatalogGateway{}, &mockPayPal{})

	orderID, err := svc.CreateOrder(context.Background(), 7)

	require.NoError(t, err)
	require.NotEmpty(t, orderID)
	assert.Equal(t, uint(3), carts.cleared)

	order := repo.orders[orderID]
	require.NotNil(t, order)
	assert.Equal(t, uint(7), order.UserID)
	assert.Equal(t, domain.PaymentMethodPayPal, order.PaymentMethod)
	assert.Equal(t, "Jane Doe", order.ShippingAddress.FullName)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Qty)
	assert.Equal(t, "67.50", order.TotalPrice.StringFixed(2))
	assert.False(t, order.IsPaid)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	svc := newCommandService(newMockOrderRepository(), &mockCartGateway{},
		&mockUserGateway{customer: testCustomer()}, &mockCatalogGateway{}, &mockPayPal{})

	_, err := svc.CreateOrder(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCreateOrder_NoShippingAddress(t *testing.T) {
	customer := testCustomer()
	customer.Address = nil
	svc := newCommandService(newMockOrderRepository(), &mockCartGateway{cart: testCart()},
		&mockUserGateway{customer: customer}, &mockCatalogGateway{}, &mockPayPal{})

	_, err := svc.CreateOrder(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNoShippingAddress)
}

func TestCreateOrder_NoPaymentMethod(t *testing.T) {
	customer := testCustomer()
	customer.PaymentMethod = ""
	svc := newCommandService(newMockOrderRepository(), &mockCartGateway{cart: testCart()},
		&mockUserGateway{customer: customer}, &mockCatalogGateway{}, &mockPayPal{})

	_, err := svc.CreateOrder(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNoPaymentMethod)
}

func paidFixture(t *testing.T, repo *mockOrderRepository) *domain.Order {
	t.Helper()
	order := &domain.Order{
		ID:            "order-1",
		UserID:        7,
		PaymentMethod: domain.PaymentMethodPayPal,
		TotalPrice:    decimal.RequireFromString("67.50"),
		Items: []domain.OrderItem{
			{OrderID: "order-1", ProductID: 1, Name: "Polo Shirt", Price: decimal.RequireFromString("25.00"), Qty: 2},
		},
	}
	repo.orders[order.ID] = order
	return order
}

func TestApprovePayPalPayment_CompletesOrder(t *testing.T) {
	repo := newMockOrderRepository()
	order := paidFixture(t, repo)
	order.PaymentResult = domain.PaymentResult{ID: "PAYPAL-1"}
	catalog := &mockCatalogGateway{}
	paypal := &mockPayPal{capture: &domain.CaptureResult{
		ID:           "PAYPAL-1",
		Status:       "COMPLETED",
		EmailAddress: "jane@example.com",
		PricePaid:    decimal.RequireFromString("67.50"),
	}}
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, catalog, paypal)

	err := svc.ApprovePayPalPayment(context.Background(), "order-1", "PAYPAL-1", authdomain.Identity{UserID: 7})

	require.NoError(t, err)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, "COMPLETED", order.PaymentResult.Status)
	assert.Equal(t, 2, catalog.decrements[1])
}

func TestApprovePayPalPayment_Mismatch(t *testing.T) {
	repo := newMockOrderRepository()
	order := paidFixture(t, repo)
	order.PaymentResult = domain.PaymentResult{ID: "PAYPAL-1"}
	paypal := &mockPayPal{capture: &domain.CaptureResult{ID: "PAYPAL-OTHER", Status: "COMPLETED"}}
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, &mockCatalogGateway{}, paypal)

	err := svc.ApprovePayPalPayment(context.Background(), "order-1", "PAYPAL-OTHER", authdomain.Identity{UserID: 7})

	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
	assert.False(t, order.IsPaid)
}

func TestApprovePayPalPayment_ForbiddenForOtherUser(t *testing.T) {
	repo := newMockOrderRepository()
	paidFixture(t, repo)
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, &mockCatalogGateway{}, &mockPayPal{})

	err := svc.ApprovePayPalPayment(context.Background(), "order-1", "PAYPAL-1", authdomain.Identity{UserID: 8})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func stripeFixture(t *testing.T, repo *mockOrderRepository) *domain.Order {
	t.Helper()
	order := paidFixture(t, repo)
	order.PaymentMethod = domain.PaymentMethodStripe
	order.PaymentResult = domain.PaymentResult{ID: "pi_intent-1"}
	return order
}

func TestConfirmStripePayment_CompletesOrder(t *testing.T) {
	repo := newMockOrderRepository()
	order := stripeFixture(t, repo)
	catalog := &mockCatalogGateway{}
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, catalog, &mockPayPal{})

	err := svc.ConfirmStripePayment(context.Background(), StripeChargeSucceeded{
		OrderID:      "order-1",
		PaymentID:    "pi_intent-1",
		EmailAddress: "jane@example.com",
		AmountCents:  6750,
	})

	require.NoError(t, err)
	assert.True(t, order.IsPaid)
	assert.Equal(t, "67.50", order.PaymentResult.PricePaid.StringFixed(2))
	assert.Equal(t, 2, catalog.decrements[1])
}

func TestConfirmStripePayment_ForgedIntentIDRejected(t *testing.T) {
	repo := newMockOrderRepository()
	order := stripeFixture(t, repo)
	catalog := &mockCatalogGateway{}
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, catalog, &mockPayPal{})

	err := svc.ConfirmStripePayment(context.Background(), StripeChargeSucceeded{
		OrderID:     "order-1",
		PaymentID:   "pi_other",
		AmountCents: 6750,
	})

	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
	assert.False(t, order.IsPaid)
	assert.Empty(t, catalog.decrements)
}

func TestConfirmStripePayment_AmountMismatchRejected(t *testing.T) {
	repo := newMockOrderRepository()
	order := stripeFixture(t, repo)
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, &mockCatalogGateway{}, &mockPayPal{})

	err := svc.ConfirmStripePayment(context.Background(), StripeChargeSucceeded{
		OrderID:     "order-1",
		PaymentID:   "pi_intent-1",
		AmountCents: 1,
	})

	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
	assert.False(t, order.IsPaid)
}

func TestConfirmStripePayment_WithoutInitiatedIntentRejected(t *testing.T) {
	repo := newMockOrderRepository()
	order := stripeFixture(t, repo)
	order.PaymentResult = domain.PaymentResult{}
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, &mockCatalogGateway{}, &mockPayPal{})

	err := svc.ConfirmStripePayment(context.Background(), StripeChargeSucceeded{
		OrderID:     "order-1",
		PaymentID:   "pi_intent-1",
		AmountCents: 6750,
	})

	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
	assert.False(t, order.IsPaid)
}

func TestMarkPaidCOD_IsIdempotentGuarded(t *testing.T) {
	repo := newMockOrderRepository()
	order := paidFixture(t, repo)
	order.PaymentMethod = domain.PaymentMethodCashOnDelivery
	catalog := &mockCatalogGateway{}
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, catalog, &mockPayPal{})

	require.NoError(t, svc.MarkPaidCOD(context.Background(), "order-1"))
	err := svc.MarkPaidCOD(context.Background(), "order-1")

	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	// 库存只扣减一次
	assert.Equal(t, 2, catalog.decrements[1])
}

func TestMarkDelivered_RequiresPaid(t *testing.T) {
	repo := newMockOrderRepository()
	paidFixture(t, repo)
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, &mockCatalogGateway{}, &mockPayPal{})

	err := svc.MarkDelivered(context.Background(), "order-1")

	assert.ErrorIs(t, err, domain.ErrOrderNotPaid)
}

func TestMarkDelivered_AfterPaid(t *testing.T) {
	repo := newMockOrderRepository()
	order := paidFixture(t, repo)
	svc := newCommandService(repo, &mockCartGateway{}, &mockUserGateway{customer: testCustomer()}, &mockCatalogGateway{}, &mockPayPal{})

	require.NoError(t, svc.MarkPaidCOD(context.Background(), "order-1"))
	require.NoError(t, svc.MarkDelivered(context.Background(), "order-1"))

	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)

	err := svc.MarkDelivered(context.Background(), "order-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyDelivered)
}
