package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品实体
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug        string          `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Category    string          `gorm:"column:category;type:varchar(100);index" json:"category"`
	Brand       string          `gorm:"column:brand;type:varchar(100)" json:"brand"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Images      []string        `gorm:"column:images;serializer:json;type:json" json:"images"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	Rating      decimal.Decimal `gorm:"column:rating;type:decimal(3,2);not null;default:0" json:"rating"`
	NumReviews  int             `gorm:"column:num_reviews;not null;default:0" json:"num_reviews"`
	IsFeatured  bool            `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	Banner      string          `gorm:"column:banner;type:varchar(255)" json:"banner"`
}

func (Product) TableName() string { return "products" }

// InStock 判断库存能否满足请求数量
func (p *Product) InStock(qty int) bool {
	return p.Stock >= qty
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, category string, offset, limit int) ([]*Product, int64, error)
	ListLatest(ctx context.Context, limit int) ([]*Product, error)
	Delete(ctx context.Context, id uint) error
	// DecrementStock 以原子 UPDATE 扣减库存，并发扣减不会丢失更新
	DecrementStock(ctx context.Context, id uint, qty int) error
	// UpdateRating 回写评分汇总（评价服务的事务内调用）
	UpdateRating(ctx context.Context, id uint, rating decimal.Decimal, numReviews int) error
	// Count 商品总数
	Count(ctx context.Context) (int64, error)
}

// EventPublisher 商品事件发布端口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event interface{}) error
}
