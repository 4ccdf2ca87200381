package domain

import "errors"

var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = errors.New("review not found")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidRating 评分必须在 1 到 5 之间
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
