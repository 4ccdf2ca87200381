package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart 购物车聚合根，归属于登录用户或匿名会话
type Cart struct {
	gorm.Model
	// 登录用户 ID，匿名购物车为 0
	UserID uint `gorm:"index" json:"user_id"`
	// 匿名会话购物车标识
	SessionCartID string     `gorm:"type:varchar(64);index" json:"session_cart_id"`
	Items         []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	// 商品小计
	ItemsPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"items_price"`
	// 运费
	ShippingPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"shipping_price"`
	// 税费
	TaxPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_price"`
	// 总价
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_price"`
}

// CartItem 购物车条目，冗余商品快照字段避免联表
type CartItem struct {
	gorm.Model
	CartID    uint   `gorm:"index" json:"cart_id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	Name      string `gorm:"type:varchar(255)" json:"name"`
	Slug      string `gorm:"type:varchar(255)" json:"slug"`
	Image     string `gorm:"type:varchar(512)" json:"image"`
	// 加购时的单价快照
	Price decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Qty   int             `json:"qty"`
}

// FindItem 按商品 ID 查找条目，不存在返回 -1
func (c *Cart) FindItem(productID uint) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// TotalQty 购物车商品总件数
func (c *Cart) TotalQty() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Qty
	}
	return total
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartRepository 购物车仓储接口
type CartRepository interface {
	// Save 保存购物车及其条目
	Save(ctx context.Context, cart *Cart) error
	// GetByUserID 获取用户购物车
	GetByUserID(ctx context.Context, userID uint) (*Cart, error)
	// GetBySessionID 获取匿名会话购物车
	GetBySessionID(ctx context.Context, sessionCartID string) (*Cart, error)
	// RemoveItem 删除购物车条目
	RemoveItem(ctx context.Context, itemID uint) error
	// Clear 清空购物车条目并重置价格
	Clear(ctx context.Context, cartID uint) error
	// DeleteByUserID 删除用户名下所有购物车
	DeleteByUserID(ctx context.Context, userID uint) error
	// RebindToUser 将会话购物车改绑到用户
	RebindToUser(ctx context.Context, sessionCartID string, userID uint) error
}

// EventPublisher 购物车领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event interface{}) error
}
