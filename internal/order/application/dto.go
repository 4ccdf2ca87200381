package application

import (
	"time"

	"github.com/prostore/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

func decimalFromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimalHundred)
}

// OrderItemDTO 订单条目视图对象
type OrderItemDTO struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	Price     string `json:"price"`
	Qty       int    `json:"qty"`
}

// OrderDTO 订单视图对象，金额序列化为两位小数字符串
type OrderDTO struct {
	ID              string         `json:"id"`
	UserID          uint           `json:"user_id"`
	ShippingAddress domain.Address `json:"shipping_address"`
	PaymentMethod   string         `json:"payment_method"`
	Items           []OrderItemDTO `json:"items"`
	ItemsPrice      string         `json:"items_price"`
	ShippingPrice   string         `json:"shipping_price"`
	TaxPrice        string         `json:"tax_price"`
	TotalPrice      string         `json:"total_price"`
	IsPaid          bool           `json:"is_paid"`
	PaidAt          *time.Time     `json:"paid_at,omitempty"`
	IsDelivered     bool           `json:"is_delivered"`
	DeliveredAt     *time.Time     `json:"delivered_at,omitempty"`
	PaymentStatus   string         `json:"payment_status,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewOrderDTO 将订单实体转换为视图对象
func NewOrderDTO(order *domain.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     item.Price.StringFixed(2),
			Qty:       item.Qty,
		})
	}
	return &OrderDTO{
		ID:              order.ID,
		UserID:          order.UserID,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Items:           items,
		ItemsPrice:      order.ItemsPrice.StringFixed(2),
		ShippingPrice:   order.ShippingPrice.StringFixed(2),
		TaxPrice:        order.TaxPrice.StringFixed(2),
		TotalPrice:      order.TotalPrice.StringFixed(2),
		IsPaid:          order.IsPaid,
		PaidAt:          order.PaidAt,
		IsDelivered:     order.IsDelivered,
		DeliveredAt:     order.DeliveredAt,
		PaymentStatus:   order.PaymentResult.Status,
		CreatedAt:       order.CreatedAt,
	}
}

// NewOrderDTOs 批量转换
func NewOrderDTOs(orders []*domain.Order) []*OrderDTO {
	dtos := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, NewOrderDTO(o))
	}
	return dtos
}
