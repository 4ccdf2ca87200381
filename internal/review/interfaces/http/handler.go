package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	authhttp "github.com/prostore/storefront/internal/auth/interfaces/http"
	"github.com/prostore/storefront/internal/review/application"
	"github.com/prostore/storefront/internal/review/domain"
	"github.com/prostore/storefront/pkg/logger"
	"github.com/prostore/storefront/pkg/response"
)

// ReviewHandler 商品评价 HTTP 处理器
type ReviewHandler struct {
	app      *application.ReviewApplicationService
	pageSize int
}

// NewReviewHandler 创建评价 HTTP 处理器实例
func NewReviewHandler(app *application.ReviewApplicationService, pageSize int) *ReviewHandler {
	return &ReviewHandler{app: app, pageSize: pageSize}
}

// RegisterRoutes 注册公开路由
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reviews/product/:product_id", h.ListReviews)
}

// RegisterAuthedRoutes 注册需登录路由
func (h *ReviewHandler) RegisterAuthedRoutes(router *gin.RouterGroup) {
	api := router.Group("/reviews")
	{
		api.POST("", h.SubmitReview)              // 提交/更新评价
		api.GET("/mine/:product_id", h.GetMyReview) // 我的评价
	}
}

// SubmitReviewRequest 提交评价请求
type SubmitReviewRequest struct {
	ProductID   uint   `json:"product_id" binding:"required"`
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=3"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
}

// SubmitReview 提交或更新评价
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	identity := authhttp.CurrentIdentity(c)
	err := h.app.SubmitReview(c.Request.Context(), application.SubmitReviewCommand{
		ProductID:   req.ProductID,
		UserID:      identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			response.Error(c, http.StatusNotFound, "Product not found")
		case errors.Is(err, domain.ErrInvalidRating):
			response.Error(c, http.StatusBadRequest, "Rating must be between 1 and 5")
		default:
			logger.Error(c.Request.Context(), "Failed to submit review",
				"product_id", req.ProductID, "user_id", identity.UserID, "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to submit review")
		}
		return
	}

	response.SuccessWithMessage(c, "Review submitted successfully", nil)
}

// ListReviews 分页获取商品评价
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid product id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	reviews, total, err := h.app.ListReviews(c.Request.Context(), uint(productID), page, h.pageSize)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list reviews", "product_id", productID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list reviews")
		return
	}

	response.Success(c, gin.H{
		"reviews": reviews,
		"total":   total,
		"page":    page,
	})
}

// GetMyReview 获取当前用户对商品的评价
func (h *ReviewHandler) GetMyReview(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	identity := authhttp.CurrentIdentity(c)
	review, err := h.app.GetUserReview(c.Request.Context(), identity.UserID, uint(productID))
	if err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			response.Error(c, http.StatusNotFound, "Review not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get review", "product_id", productID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to get review")
		return
	}

	response.Success(c, review)
}
