package domain

import "errors"

var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound 购物车条目不存在
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrOutOfStock 库存不足
	ErrOutOfStock = errors.New("not enough stock")
)
