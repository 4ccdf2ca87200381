package application

import (
	"time"

	"github.com/prostore/storefront/internal/catalog/domain"
)

// ProductDTO 商品视图对象，金额序列化为两位小数字符串
type ProductDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	Rating      string    `json:"rating"`
	NumReviews  int       `json:"num_reviews"`
	IsFeatured  bool      `json:"is_featured"`
	Banner      string    `json:"banner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProductDTO 将商品实体转换为视图对象
func NewProductDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Category:    p.Category,
		Brand:       p.Brand,
		Description: p.Description,
		Images:      p.Images,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		Rating:      p.Rating.StringFixed(2),
		NumReviews:  p.NumReviews,
		IsFeatured:  p.IsFeatured,
		Banner:      p.Banner,
		CreatedAt:   p.CreatedAt,
	}
}

// NewProductDTOs 批量转换
func NewProductDTOs(products []*domain.Product) []*ProductDTO {
	dtos := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, NewProductDTO(p))
	}
	return dtos
}
