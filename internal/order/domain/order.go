package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 支付方式常量
const (
	PaymentMethodPayPal         = "PayPal"
	PaymentMethodStripe         = "Stripe"
	PaymentMethodCashOnDelivery = "CashOnDelivery"
)

// Address 订单收货地址快照
type Address struct {
	FullName      string  `json:"full_name"`
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	Lat           float64 `json:"lat,omitempty"`
	Lng           float64 `json:"lng,omitempty"`
}

// PaymentResult 支付网关回执
type PaymentResult struct {
	ID           string          `gorm:"column:payment_id;type:varchar(128)" json:"id"`
	Status       string          `gorm:"column:payment_status;type:varchar(32)" json:"status"`
	EmailAddress string          `gorm:"column:payment_email;type:varchar(255)" json:"email_address"`
	PricePaid    decimal.Decimal `gorm:"column:payment_price_paid;type:decimal(12,2)" json:"price_paid"`
}

// Order 订单聚合根，下单时固化购物车与地址快照
type Order struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID          uint        `gorm:"index" json:"user_id"`
	ShippingAddress Address     `gorm:"serializer:json;type:json" json:"shipping_address"`
	PaymentMethod   string      `gorm:"type:varchar(32)" json:"payment_method"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	ItemsPrice    decimal.Decimal `gorm:"type:decimal(12,2)" json:"items_price"`
	ShippingPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"shipping_price"`
	TaxPrice      decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_price"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_price"`

	IsPaid      bool       `json:"is_paid"`
	PaidAt      *time.Time `json:"paid_at"`
	IsDelivered bool       `json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at"`

	PaymentResult PaymentResult `gorm:"embedded" json:"payment_result"`
}

// OrderItem 订单条目，下单时的商品快照
type OrderItem struct {
	gorm.Model
	OrderID   string          `gorm:"type:varchar(36);index" json:"order_id"`
	ProductID uint            `gorm:"index" json:"product_id"`
	Name      string          `gorm:"type:varchar(255)" json:"name"`
	Slug      string          `gorm:"type:varchar(255)" json:"slug"`
	Image     string          `gorm:"type:varchar(512)" json:"image"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Qty       int             `json:"qty"`
}

// MarkPaid 标记订单已支付，重复支付返回 ErrAlreadyPaid
func (o *Order) MarkPaid(result PaymentResult) error {
	if o.IsPaid {
		return ErrAlreadyPaid
	}
	now := time.Now()
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = result
	return nil
}

// MarkDelivered 标记订单已发货，未支付返回 ErrOrderNotPaid
func (o *Order) MarkDelivered() error {
	if !o.IsPaid {
		return ErrOrderNotPaid
	}
	if o.IsDelivered {
		return ErrAlreadyDelivered
	}
	now := time.Now()
	o.IsDelivered = true
	o.DeliveredAt = &now
	return nil
}

// SalesPoint 按月销售统计
type SalesPoint struct {
	Month      string          `json:"month"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Save 保存订单及其条目
	Save(ctx context.Context, order *Order) error
	// GetByID 获取订单
	GetByID(ctx context.Context, id string) (*Order, error)
	// ListByUser 分页获取用户订单
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*Order, int64, error)
	// List 分页获取全部订单
	List(ctx context.Context, offset, limit int) ([]*Order, int64, error)
	// Delete 删除订单
	Delete(ctx context.Context, id string) error
	// Count 订单总数
	Count(ctx context.Context) (int64, error)
	// TotalSales 全部订单销售额
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	// SalesByMonth 按月聚合销售额
	SalesByMonth(ctx context.Context) ([]SalesPoint, error)
	// HasUserPurchased 用户是否有包含该商品的已支付订单
	HasUserPurchased(ctx context.Context, userID, productID uint) (bool, error)
}

// EventPublisher 订单领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event interface{}) error
}
