package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Review 商品评价，每个用户对同一商品只保留一条
type Review struct {
	gorm.Model
	ProductID uint   `gorm:"index:idx_product_user,priority:1" json:"product_id"`
	UserID    uint   `gorm:"index:idx_product_user,priority:2" json:"user_id"`
	UserName  string `gorm:"type:varchar(255)" json:"user_name"`
	Title     string `gorm:"type:varchar(255)" json:"title"`
	// 评价内容
	Description string `gorm:"type:text" json:"description"`
	// 1 到 5 星
	Rating int `json:"rating"`
	// 是否已购买过该商品
	IsVerifiedPurchase bool `json:"is_verified_purchase"`
}

// RatingSummary 商品评分汇总
type RatingSummary struct {
	Average decimal.Decimal
	Count   int
}

// ReviewRepository 评价仓储接口
type ReviewRepository interface {
	// Save 保存评价
	Save(ctx context.Context, review *Review) error
	// GetByUserAndProduct 获取用户对商品的评价
	GetByUserAndProduct(ctx context.Context, userID, productID uint) (*Review, error)
	// ListByProduct 分页获取商品评价
	ListByProduct(ctx context.Context, productID uint, offset, limit int) ([]*Review, int64, error)
	// Summarize 计算商品评分均值与数量
	Summarize(ctx context.Context, productID uint) (*RatingSummary, error)
}
