package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	authhttp "github.com/prostore/storefront/internal/auth/interfaces/http"
	"github.com/prostore/storefront/internal/user/application"
	"github.com/prostore/storefront/internal/user/domain"
	"github.com/prostore/storefront/pkg/logger"
	"github.com/prostore/storefront/pkg/response"
)

// UserHandler 用户 HTTP 处理器
type UserHandler struct {
	app      *application.UserApplicationService
	pageSize int
}

// NewUserHandler 创建用户 HTTP 处理器实例
func NewUserHandler(app *application.UserApplicationService, pageSize int) *UserHandler {
	return &UserHandler{app: app, pageSize: pageSize}
}

// RegisterRoutes 注册用户自助路由（调用方需挂载登录中间件）
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/users")
	{
		api.GET("/me", h.GetProfile)                      // 个人信息
		api.PUT("/profile", h.UpdateProfile)              // 更新昵称
		api.PUT("/address", h.UpdateAddress)              // 更新收货地址
		api.PUT("/payment-method", h.UpdatePaymentMethod) // 更新支付方式
	}
}

// RegisterAdminRoutes 注册管理端路由
func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	api := router.Group("/users")
	{
		api.GET("", h.ListUsers)          // 用户列表
		api.PUT("/:id", h.UpdateUser)     // 更新用户
		api.DELETE("/:id", h.DeleteUser)  // 删除用户
	}
}

// GetProfile 获取当前用户信息
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity := authhttp.CurrentIdentity(c)

	user, err := h.app.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get user", "user_id", identity.UserID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	response.Success(c, application.NewUserDTO(user))
}

// UpdateProfileRequest 更新昵称请求
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=3"`
}

// UpdateProfile 更新当前用户昵称
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	identity := authhttp.CurrentIdentity(c)
	if err := h.app.UpdateProfile(c.Request.Context(), identity.UserID, req.Name); err != nil {
		logger.Error(c.Request.Context(), "Failed to update profile", "user_id", identity.UserID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	response.SuccessWithMessage(c, "Profile updated successfully", nil)
}

// AddressRequest 收货地址请求
type AddressRequest struct {
	FullName      string  `json:"full_name" binding:"required,min=3"`
	StreetAddress string  `json:"street_address" binding:"required,min=3"`
	City          string  `json:"city" binding:"required,min=3"`
	PostalCode    string  `json:"postal_code" binding:"required,min=3"`
	Country       string  `json:"country" binding:"required,min=3"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
}

// UpdateAddress 更新当前用户收货地址
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	identity := authhttp.CurrentIdentity(c)
	address := domain.Address{
		FullName:      req.FullName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Lat:           req.Lat,
		Lng:           req.Lng,
	}
	if err := h.app.UpdateAddress(c.Request.Context(), identity.UserID, address); err != nil {
		logger.Error(c.Request.Context(), "Failed to update address", "user_id", identity.UserID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to update address")
		return
	}

	response.SuccessWithMessage(c, "Address updated successfully", nil)
}

// PaymentMethodRequest 支付方式请求
type PaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// UpdatePaymentMethod 更新当前用户支付方式
func (h *UserHandler) UpdatePaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	identity := authhttp.CurrentIdentity(c)
	if err := h.app.UpdatePaymentMethod(c.Request.Context(), identity.UserID, req.PaymentMethod); err != nil {
		if errors.Is(err, domain.ErrInvalidPaymentMethod) {
			response.Error(c, http.StatusBadRequest, "Invalid payment method")
			return
		}
		logger.Error(c.Request.Context(), "Failed to update payment method", "user_id", identity.UserID, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to update payment method")
		return
	}

	response.SuccessWithMessage(c, "Payment method updated successfully", nil)
}

// ListUsers 分页获取用户列表
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	users, total, err := h.app.ListUsers(c.Request.Context(), page, h.pageSize)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list users", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	response.Success(c, gin.H{
		"users":       application.NewUserDTOs(users),
		"total":       total,
		"page":        page,
		"total_pages": (total + int64(h.pageSize) - 1) / int64(h.pageSize),
	})
}

// UpdateUserRequest 管理员更新用户请求
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,min=3"`
	Role string `json:"role" binding:"required"`
}

// UpdateUser 管理员更新用户
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.app.UpdateUser(c.Request.Context(), uint(id), req.Name, req.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "Invalid role")
		default:
			logger.Error(c.Request.Context(), "Failed to update user", "user_id", id, "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	response.SuccessWithMessage(c, "User updated successfully", nil)
}

// DeleteUser 管理员删除用户
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.app.DeleteUser(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Error(c.Request.Context(), "Failed to delete user", "user_id", id, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	response.SuccessWithMessage(c, "User deleted successfully", nil)
}
