package domain

import "errors"

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("product not found")
