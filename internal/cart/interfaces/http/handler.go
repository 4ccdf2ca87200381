package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authhttp "github.com/prostore/storefront/internal/auth/interfaces/http"
	"github.com/prostore/storefront/internal/cart/application"
	"github.com/prostore/storefront/internal/cart/domain"
	"github.com/prostore/storefront/pkg/logger"
	"github.com/prostore/storefront/pkg/metrics"
	"github.com/prostore/storefront/pkg/response"
)

// CartHandler 购物车 HTTP 处理器
type CartHandler struct {
	app     *application.CartApplicationService
	metrics *metrics.Metrics
}

// NewCartHandler 创建购物车 HTTP 处理器实例
func NewCartHandler(app *application.CartApplicationService, m *metrics.Metrics) *CartHandler {
	return &CartHandler{app: app, metrics: m}
}

// RegisterRoutes 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/cart")
	{
		api.GET("", h.GetCart)                        // 查看购物车
		api.POST("/items", h.AddItem)                 // 加购
		api.DELETE("/items/:product_id", h.RemoveItem) // 减购
	}
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Qty       int  `json:"qty"`
}

// GetCart 获取当前身份的购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.app.GetCart(c.Request.Context(), h.identity(c))
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get cart", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to get cart")
		return
	}
	response.Success(c, application.NewCartDTO(cart))
}

// AddItem 加购一件商品
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.app.AddItem(c.Request.Context(), application.AddItemCommand{
		Identity:  h.identity(c),
		ProductID: req.ProductID,
		Qty:       req.Qty,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			response.Error(c, http.StatusNotFound, "Product not found")
		case errors.Is(err, domain.ErrOutOfStock):
			response.Error(c, http.StatusConflict, "Not enough stock")
		default:
			logger.Error(c.Request.Context(), "Failed to add item to cart",
				"product_id", req.ProductID, "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to add item to cart")
		}
		return
	}

	if h.metrics != nil {
		h.metrics.CartItemsAddedTotal.Inc()
	}
	response.SuccessWithMessage(c, message, nil)
}

// RemoveItem 减购一件商品
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var uri struct {
		ProductID uint `uri:"product_id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	message, err := h.app.RemoveItem(c.Request.Context(), application.RemoveItemCommand{
		Identity:  h.identity(c),
		ProductID: uri.ProductID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCartNotFound):
			response.Error(c, http.StatusNotFound, "Cart not found")
		case errors.Is(err, domain.ErrItemNotFound):
			response.Error(c, http.StatusNotFound, "Item not found in cart")
		default:
			logger.Error(c.Request.Context(), "Failed to remove item from cart",
				"product_id", uri.ProductID, "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to remove item from cart")
		}
		return
	}

	if h.metrics != nil {
		h.metrics.CartItemsRemovedTotal.Inc()
	}
	response.SuccessWithMessage(c, message, nil)
}

func (h *CartHandler) identity(c *gin.Context) application.CartIdentity {
	identity := authhttp.CurrentIdentity(c)
	return application.CartIdentity{
		UserID:        identity.UserID,
		SessionCartID: identity.SessionCartID,
	}
}
