package domain

import "time"

// CartItemAddedEvent 加购事件
type CartItemAddedEvent struct {
	CartID    uint      `json:"cart_id"`
	UserID    uint      `json:"user_id,omitempty"`
	ProductID uint      `json:"product_id"`
	Slug      string    `json:"slug"`
	Qty       int       `json:"qty"`
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemRemovedEvent 减购事件
type CartItemRemovedEvent struct {
	CartID    uint      `json:"cart_id"`
	UserID    uint      `json:"user_id,omitempty"`
	ProductID uint      `json:"product_id"`
	Slug      string    `json:"slug"`
	Qty       int       `json:"qty"`
	Timestamp time.Time `json:"timestamp"`
}
