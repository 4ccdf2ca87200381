package domain

import "time"

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderID       string    `json:"order_id"`
	UserID        uint      `json:"user_id"`
	PaymentMethod string    `json:"payment_method"`
	TotalPrice    string    `json:"total_price"`
	ItemCount     int       `json:"item_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// OrderPaidEvent 订单支付事件
type OrderPaidEvent struct {
	OrderID       string    `json:"order_id"`
	UserID        uint      `json:"user_id"`
	PaymentMethod string    `json:"payment_method"`
	PaymentID     string    `json:"payment_id"`
	PricePaid     string    `json:"price_paid"`
	Timestamp     time.Time `json:"timestamp"`
}

// OrderDeliveredEvent 订单发货事件
type OrderDeliveredEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    uint      `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
