package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	authdomain "github.com/prostore/storefront/internal/auth/domain"
	"github.com/prostore/storefront/internal/order/domain"
	"github.com/prostore/storefront/pkg/logger"
)

// TxRunner 事务执行接口，由 pkg/db 提供实现
type TxRunner interface {
	WithTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// OrderCommandService 订单命令服务
type OrderCommandService struct {
	repo      domain.OrderRepository
	carts     CartGateway
	users     UserGateway
	catalog   CatalogGateway
	paypal    domain.PayPalProvider
	stripe    domain.StripeProvider
	db        TxRunner
	publisher domain.EventPublisher
}

// NewOrderCommandService 创建订单命令服务实例
func NewOrderCommandService(
	repo domain.OrderRepository,
	carts CartGateway,
	users UserGateway,
	catalog CatalogGateway,
	paypal domain.PayPalProvider,
	stripe domain.StripeProvider,
	db TxRunner,
	publisher domain.EventPublisher,
) *OrderCommandService {
	return &OrderCommandService{
		repo:      repo,
		carts:     carts,
		users:     users,
		catalog:   catalog,
		paypal:    paypal,
		stripe:    stripe,
		db:        db,
		publisher: publisher,
	}
}

// CreateOrder 下单：固化购物车与用户地址快照，事务内创建订单并清空购物车
func (s *OrderCommandService) CreateOrder(ctx context.Context, userID uint) (string, error) {
	customer, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(cart.Items) == 0 {
		return "", domain.ErrEmptyCart
	}
	if customer.Address == nil {
		return "", domain.ErrNoShippingAddress
	}
	if customer.PaymentMethod == "" {
		return "", domain.ErrNoPaymentMethod
	}

	order := &domain.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		ShippingAddress: *customer.Address,
		PaymentMethod:   customer.PaymentMethod,
		ItemsPrice:      cart.ItemsPrice,
		ShippingPrice:   cart.ShippingPrice,
		TaxPrice:        cart.TaxPrice,
		TotalPrice:      cart.TotalPrice,
	}
	for _, line := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Slug:      line.Slug,
			Image:     line.Image,
			Price:     line.Price,
			Qty:       line.Qty,
		})
	}

	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, order); err != nil {
			return err
		}
		return s.carts.Clear(txCtx, cart.ID)
	})
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "Order created",
		"order_id", order.ID, "user_id", userID, "total", order.TotalPrice.StringFixed(2))

	if s.publisher != nil {
		event := domain.OrderCreatedEvent{
			OrderID:       order.ID,
			UserID:        userID,
			PaymentMethod: order.PaymentMethod,
			TotalPrice:    order.TotalPrice.StringFixed(2),
			ItemCount:     len(order.Items),
			Timestamp:     time.Now(),
		}
		_ = s.publisher.Publish(ctx, "order.created", order.ID, event)
	}

	return order.ID, nil
}

// InitiatePayPalPayment 创建 PayPal 订单并把网关订单 ID 记入支付回执
func (s *OrderCommandService) InitiatePayPalPayment(ctx context.Context, orderID string, identity authdomain.Identity) (string, error) {
	order, err := s.getOwned(ctx, orderID, identity)
	if err != nil {
		return "", err
	}
	if order.IsPaid {
		return "", domain.ErrAlreadyPaid
	}
	if order.PaymentMethod != domain.PaymentMethodPayPal {
		return "", domain.ErrInvalidPaymentMethod
	}

	paypalOrderID, err := s.paypal.CreateOrder(ctx, order.TotalPrice)
	if err != nil {
		return "", err
	}

	order.PaymentResult = domain.PaymentResult{ID: paypalOrderID}
	if err := s.repo.Save(ctx, order); err != nil {
		return "", err
	}
	return paypalOrderID, nil
}

// ApprovePayPalPayment 捕获 PayPal 付款并完成支付转换；回执不匹配返回 ErrPaymentMismatch
func (s *OrderCommandService) ApprovePayPalPayment(ctx context.Context, orderID, paypalOrderID string, identity authdomain.Identity) error {
	order, err := s.getOwned(ctx, orderID, identity)
	if err != nil {
		return err
	}

	capture, err := s.paypal.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		return err
	}
	if capture.ID != order.PaymentResult.ID || capture.Status != "COMPLETED" {
		return domain.ErrPaymentMismatch
	}

	return s.markPaid(ctx, order, domain.PaymentResult{
		ID:           capture.ID,
		Status:       capture.Status,
		EmailAddress: capture.EmailAddress,
		PricePaid:    capture.PricePaid,
	})
}

// InitiateStripePayment 创建 Stripe 支付意图，返回客户端密钥
func (s *OrderCommandService) InitiateStripePayment(ctx context.Context, orderID string, identity authdomain.Identity) (string, error) {
	order, err := s.getOwned(ctx, orderID, identity)
	if err != nil {
		return "", err
	}
	if order.IsPaid {
		return "", domain.ErrAlreadyPaid
	}
	if order.PaymentMethod != domain.PaymentMethodStripe {
		return "", domain.ErrInvalidPaymentMethod
	}

	amountCents := order.TotalPrice.Mul(decimalHundred).IntPart()
	intentID, clientSecret, err := s.stripe.CreatePaymentIntent(ctx, amountCents, order.ID)
	if err != nil {
		return "", err
	}

	order.PaymentResult = domain.PaymentResult{ID: intentID}
	if err := s.repo.Save(ctx, order); err != nil {
		return "", err
	}
	return clientSecret, nil
}

// StripeChargeSucceeded Stripe 回调的支付成功通知
type StripeChargeSucceeded struct {
	OrderID      string
	PaymentID    string
	EmailAddress string
	AmountCents  int64
}

// ConfirmStripePayment 处理 Stripe 支付成功回调，完成支付转换；
// 回调的支付意图 ID 或金额与订单不符返回 ErrPaymentMismatch
func (s *OrderCommandService) ConfirmStripePayment(ctx context.Context, notice StripeChargeSucceeded) error {
	order, err := s.repo.GetByID(ctx, notice.OrderID)
	if err != nil {
		return err
	}

	pricePaid := decimalFromCents(notice.AmountCents)
	if notice.PaymentID != order.PaymentResult.ID || !pricePaid.Equal(order.TotalPrice) {
		return domain.ErrPaymentMismatch
	}

	return s.markPaid(ctx, order, domain.PaymentResult{
		ID:           notice.PaymentID,
		Status:       "COMPLETED",
		EmailAddress: notice.EmailAddress,
		PricePaid:    pricePaid,
	})
}

// MarkPaidCOD 货到付款订单由管理员标记已支付
func (s *OrderCommandService) MarkPaidCOD(ctx context.Context, orderID string) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	return s.markPaid(ctx, order, domain.PaymentResult{Status: "COMPLETED"})
}

// MarkDelivered 管理员标记订单已发货，未支付订单拒绝
func (s *OrderCommandService) MarkDelivered(ctx context.Context, orderID string) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := order.MarkDelivered(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return err
	}

	if s.publisher != nil {
		event := domain.OrderDeliveredEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, "order.delivered", order.ID, event)
	}
	return nil
}

// DeleteOrder 管理员删除订单
func (s *OrderCommandService) DeleteOrder(ctx context.Context, orderID string) error {
	return s.repo.Delete(ctx, orderID)
}

// markPaid 支付转换：事务内扣减库存并保存支付状态，重复支付返回 ErrAlreadyPaid
func (s *OrderCommandService) markPaid(ctx context.Context, order *domain.Order, result domain.PaymentResult) error {
	if err := order.MarkPaid(result); err != nil {
		return err
	}

	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		for _, item := range order.Items {
			if err := s.catalog.DecrementStock(txCtx, item.ProductID, item.Qty); err != nil {
				return err
			}
		}
		return s.repo.Save(txCtx, order)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "Order paid",
		"order_id", order.ID, "payment_method", order.PaymentMethod,
		"price_paid", result.PricePaid.StringFixed(2))

	if s.publisher != nil {
		event := domain.OrderPaidEvent{
			OrderID:       order.ID,
			UserID:        order.UserID,
			PaymentMethod: order.PaymentMethod,
			PaymentID:     result.ID,
			PricePaid:     result.PricePaid.StringFixed(2),
			Timestamp:     time.Now(),
		}
		_ = s.publisher.Publish(ctx, "order.paid", order.ID, event)
	}
	return nil
}

func (s *OrderCommandService) getOwned(ctx context.Context, orderID string, identity authdomain.Identity) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != identity.UserID && !identity.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	return order, nil
}
