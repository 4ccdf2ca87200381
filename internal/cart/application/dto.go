package application

import "github.com/prostore/storefront/internal/cart/domain"

// CartItemDTO 购物车条目视图对象
type CartItemDTO struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	Price     string `json:"price"`
	Qty       int    `json:"qty"`
}

// CartDTO 购物车视图对象，金额序列化为两位小数字符串
type CartDTO struct {
	ID            uint          `json:"id"`
	Items         []CartItemDTO `json:"items"`
	ItemsPrice    string        `json:"items_price"`
	ShippingPrice string        `json:"shipping_price"`
	TaxPrice      string        `json:"tax_price"`
	TotalPrice    string        `json:"total_price"`
	TotalQty      int           `json:"total_qty"`
}

// NewCartDTO 将购物车实体转换为视图对象
func NewCartDTO(cart *domain.Cart) *CartDTO {
	items := make([]CartItemDTO, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		items = append(items, CartItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     item.Price.StringFixed(2),
			Qty:       item.Qty,
		})
	}
	return &CartDTO{
		ID:            cart.ID,
		Items:         items,
		ItemsPrice:    cart.ItemsPrice.StringFixed(2),
		ShippingPrice: cart.ShippingPrice.StringFixed(2),
		TaxPrice:      cart.TaxPrice.StringFixed(2),
		TotalPrice:    cart.TotalPrice.StringFixed(2),
		TotalQty:      cart.TotalQty(),
	}
}
