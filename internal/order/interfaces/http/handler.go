package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	authhttp "github.com/prostore/storefront/internal/auth/interfaces/http"
	"github.com/prostore/storefront/internal/order/application"
	"github.com/prostore/storefront/internal/order/domain"
	"github.com/prostore/storefront/pkg/logger"
	"github.com/prostore/storefront/pkg/metrics"
	"github.com/prostore/storefront/pkg/response"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	app      *application.OrderApplicationService
	metrics  *metrics.Metrics
	pageSize int
}

// NewOrderHandler 创建订单 HTTP 处理器实例
func NewOrderHandler(app *application.OrderApplicationService, m *metrics.Metrics, pageSize int) *OrderHandler {
	return &OrderHandler{app: app, metrics: m, pageSize: pageSize}
}

// RegisterRoutes 注册路由（调用方需挂载登录中间件）
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/orders")
	{
		api.POST("", h.CreateOrder)                         // 下单
		api.GET("", h.ListMyOrders)                         // 我的订单
		api.GET("/:id", h.GetOrder)                         // 订单详情
		api.POST("/:id/paypal", h.InitiatePayPal)           // 创建 PayPal 订单
		api.POST("/:id/paypal/capture", h.CapturePayPal)    // 捕获 PayPal 付款
		api.POST("/:id/stripe", h.InitiateStripe)           // 创建 Stripe 支付意图
	}
}

// RegisterWebhookRoutes 注册支付回调路由
func (h *OrderHandler) RegisterWebhookRoutes(router *gin.RouterGroup) {
	router.POST("/webhooks/stripe", h.StripeWebhook)
}

// RegisterAdminRoutes 注册管理端路由
func (h *OrderHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	api := router.Group("/orders")
	{
		api.GET("", h.ListOrders)              // 全部订单
		api.DELETE("/:id", h.DeleteOrder)      // 删除订单
		api.PUT("/:id/pay", h.MarkPaidCOD)     // 货到付款标记已支付
		api.PUT("/:id/deliver", h.MarkDelivered) // 标记已发货
	}
	router.GET("/summary", h.GetSummary) // 运营汇总
}

// CreateOrder 下单，前置条件不满足时返回对应跳转
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	identity := authhttp.CurrentIdentity(c)

	orderID, err := h.app.CreateOrder(c.Request.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			response.ErrorWithRedirect(c, http.StatusBadRequest, "Your cart is empty", "/cart")
		case errors.Is(err, domain.ErrNoShippingAddress):
			response.ErrorWithRedirect(c, http.StatusBadRequest, "No shipping address", "/shipping-address")
		case errors.Is(err, domain.ErrNoPaymentMethod):
			response.ErrorWithRedirect(c, http.StatusBadRequest, "No payment method", "/payment-method")
		default:
			logger.Error(c.Request.Context(), "Failed to create order", "user_id", identity.UserID, "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersCreatedTotal.Inc()
	}
	response.SuccessWithRedirect(c, "Order created", "/order/"+orderID, gin.H{"order_id": orderID})
}

// GetOrder 获取订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	identity := authhttp.CurrentIdentity(c)
	orderID := c.Param("id")

	order, err := h.app.GetOrder(c.Request.Context(), orderID, identity)
	if err != nil {
		h.renderOrderError(c, orderID, err, "Failed to get order")
		return
	}

	response.Success(c, application.NewOrderDTO(order))
}

// ListMyOrders 分页获取当前用户订单
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	identity := authhttp.CurrentIdentity(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	orders, total, err := h.app.ListUserOrders(c.Request.Context(), identity.UserID, page, h.pageSize)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list orders", "user_id", identity.UserID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	response.Success(c, gin.H{
		"orders":      application.NewOrderDTOs(orders),
		"total":       total,
		"page":        page,
		"total_pages": (total + int64(h.pageSize) - 1) / int64(h.pageSize),
	})
}

// InitiatePayPal 为订单创建 PayPal 网关订单
func (h *OrderHandler) InitiatePayPal(c *gin.Context) {
	identity := authhttp.CurrentIdentity(c)
	orderID := c.Param("id")

	paypalOrderID, err := h.app.InitiatePayPalPayment(c.Request.Context(), orderID, identity)
	if err != nil {
		h.renderPaymentError(c, orderID, err, "Failed to initiate PayPal payment")
		return
	}

	response.Success(c, gin.H{"paypal_order_id": paypalOrderID})
}

// CapturePayPalRequest PayPal 捕获请求
type CapturePayPalRequest struct {
	PayPalOrderID string `json:"paypal_order_id" binding:"required"`
}

// CapturePayPal 捕获 PayPal 付款并完成支付
func (h *OrderHandler) CapturePayPal(c *gin.Context) {
	identity := authhttp.CurrentIdentity(c)
	orderID := c.Param("id")

	var req CapturePayPalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.app.ApprovePayPalPayment(c.Request.Context(), orderID, req.PayPalOrderID, identity)
	if err != nil {
		if h.metrics != nil && !errors.Is(err, domain.ErrOrderNotFound) {
			h.metrics.PaymentFailuresTotal.Inc()
		}
		h.renderPaymentError(c, orderID, err, "Failed to capture PayPal payment")
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersPaidTotal.Inc()
	}
	response.SuccessWithMessage(c, "Your order has been paid", nil)
}

// InitiateStripe 为订单创建 Stripe 支付意图
func (h *OrderHandler) InitiateStripe(c *gin.Context) {
	identity := authhttp.CurrentIdentity(c)
	orderID := c.Param("id")

	clientSecret, err := h.app.InitiateStripePayment(c.Request.Context(), orderID, identity)
	if err != nil {
		h.renderPaymentError(c, orderID, err, "Failed to initiate Stripe payment")
		return
	}

	response.Success(c, gin.H{"client_secret": clientSecret})
}

// StripeWebhookRequest Stripe 支付成功回调
type StripeWebhookRequest struct {
	OrderID      string `json:"order_id" binding:"required"`
	PaymentID    string `json:"payment_id" binding:"required"`
	EmailAddress string `json:"email_address"`
	AmountCents  int64  `json:"amount" binding:"required"`
}

// StripeWebhook 处理 Stripe 支付成功回调
func (h *OrderHandler) StripeWebhook(c *gin.Context) {
	var req StripeWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.app.ConfirmStripePayment(c.Request.Context(), application.StripeChargeSucceeded{
		OrderID:      req.OrderID,
		PaymentID:    req.PaymentID,
		EmailAddress: req.EmailAddress,
		AmountCents:  req.AmountCents,
	})
	if err != nil {
		// 重复回调按成功处理，Stripe 才会停止重试
		if errors.Is(err, domain.ErrAlreadyPaid) {
			response.SuccessWithMessage(c, "Order already paid", nil)
			return
		}
		if h.metrics != nil {
			h.metrics.PaymentFailuresTotal.Inc()
		}
		h.renderPaymentError(c, req.OrderID, err, "Failed to confirm Stripe payment")
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersPaidTotal.Inc()
	}
	response.SuccessWithMessage(c, "Order marked as paid", nil)
}

// ListOrders 分页获取全部订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	orders, total, err := h.app.ListOrders(c.Request.Context(), page, h.pageSize)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list all orders", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	response.Success(c, gin.H{
		"orders":      application.NewOrderDTOs(orders),
		"total":       total,
		"page":        page,
		"total_pages": (total + int64(h.pageSize) - 1) / int64(h.pageSize),
	})
}

// DeleteOrder 删除订单
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID := c.Param("id")

	if err := h.app.DeleteOrder(c.Request.Context(), orderID); err != nil {
		h.renderOrderError(c, orderID, err, "Failed to delete order")
		return
	}

	response.SuccessWithMessage(c, "Order deleted successfully", nil)
}

// MarkPaidCOD 货到付款订单标记已支付
func (h *OrderHandler) MarkPaidCOD(c *gin.Context) {
	orderID := c.Param("id")

	if err := h.app.MarkPaidCOD(c.Request.Context(), orderID); err != nil {
		h.renderPaymentError(c, orderID, err, "Failed to mark order as paid")
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersPaidTotal.Inc()
	}
	response.SuccessWithMessage(c, "Order marked as paid", nil)
}

// MarkDelivered 标记订单已发货
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	orderID := c.Param("id")

	if err := h.app.MarkDelivered(c.Request.Context(), orderID); err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			response.Error(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, domain.ErrOrderNotPaid):
			response.Error(c, http.StatusConflict, "Order is not paid")
		case errors.Is(err, domain.ErrAlreadyDelivered):
			response.Error(c, http.StatusConflict, "Order is already delivered")
		default:
			logger.Error(c.Request.Context(), "Failed to mark order as delivered", "order_id", orderID, "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to mark order as delivered")
		}
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersDeliveredTotal.Inc()
	}
	response.SuccessWithMessage(c, "Order marked as delivered", nil)
}

// GetSummary 运营汇总数据
func (h *OrderHandler) GetSummary(c *gin.Context) {
	summary, err := h.app.GetSummary(c.Request.Context(), 6)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to get summary", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to get summary")
		return
	}

	response.Success(c, gin.H{
		"orders_count":   summary.OrdersCount,
		"products_count": summary.ProductsCount,
		"users_count":    summary.UsersCount,
		"total_sales":    summary.TotalSales,
		"sales_data":     summary.SalesData,
		"latest_orders":  application.NewOrderDTOs(summary.LatestOrders),
	})
}

func (h *OrderHandler) renderOrderError(c *gin.Context, orderID string, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		response.Error(c, http.StatusForbidden, "Permission denied")
	default:
		logger.Error(c.Request.Context(), fallback, "order_id", orderID, "error", err)
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}

func (h *OrderHandler) renderPaymentError(c *gin.Context, orderID string, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		response.Error(c, http.StatusForbidden, "Permission denied")
	case errors.Is(err, domain.ErrAlreadyPaid):
		response.Error(c, http.StatusConflict, "Order is already paid")
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		response.Error(c, http.StatusBadRequest, "Invalid payment method for this order")
	case errors.Is(err, domain.ErrPaymentMismatch):
		response.Error(c, http.StatusBadRequest, "Payment does not match order")
	default:
		logger.Error(c.Request.Context(), fallback, "order_id", orderID, "error", err)
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
