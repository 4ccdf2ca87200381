package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prostore/storefront/internal/auth/application"
	"github.com/prostore/storefront/internal/auth/domain"
	"github.com/prostore/storefront/pkg/logger"
	"github.com/prostore/storefront/pkg/response"
)

// AuthHandler 认证 HTTP 处理器
type AuthHandler struct {
	app *application.AuthApplicationService
	// 会话令牌 Cookie 有效秒数
	tokenCookieMaxAge int
}

// NewAuthHandler 创建认证 HTTP 处理器实例
func NewAuthHandler(app *application.AuthApplicationService, tokenCookieMaxAge int) *AuthHandler {
	return &AuthHandler{app: app, tokenCookieMaxAge: tokenCookieMaxAge}
}

// RegisterRoutes 注册路由
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/auth")
	{
		api.POST("/register", h.Register) // 注册
		api.POST("/sign-in", h.SignIn)    // 登录
		api.POST("/sign-out", h.SignOut)  // 登出
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=6"`
}

// SignInRequest 登录请求
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register 注册新用户
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sessionCartID, _ := c.Cookie(SessionCartCookie)
	result, err := h.app.Register(c.Request.Context(), application.RegisterCommand{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		SessionCartID:   sessionCartID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "Email already registered")
			return
		}
		logger.Error(c.Request.Context(), "Failed to register user", "email", req.Email, "error", err)
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	h.setTokenCookie(c, result.Token)
	response.SuccessWithMessage(c, "Signed up successfully", h.toUserPayload(result))
}

// SignIn 邮箱密码登录
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sessionCartID, _ := c.Cookie(SessionCartCookie)
	result, err := h.app.SignIn(c.Request.Context(), application.SignInCommand{
		Email:         req.Email,
		Password:      req.Password,
		SessionCartID: sessionCartID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Error(c.Request.Context(), "Failed to sign in", "email", req.Email, "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	h.setTokenCookie(c, result.Token)
	response.SuccessWithMessage(c, "Signed in successfully", h.toUserPayload(result))
}

// SignOut 登出并吊销会话
func (h *AuthHandler) SignOut(c *gin.Context) {
	if token, err := c.Cookie(SessionTokenCookie); err == nil && token != "" {
		if err := h.app.SignOut(c.Request.Context(), token); err != nil {
			logger.Warn(c.Request.Context(), "Failed to revoke session", "error", err)
		}
	}

	c.SetCookie(SessionTokenCookie, "", -1, "/", "", false, true)
	response.SuccessWithMessage(c, "Signed out successfully", nil)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(SessionTokenCookie, token, h.tokenCookieMaxAge, "/", "", false, true)
}

func (h *AuthHandler) toUserPayload(result *application.SignInResult) gin.H {
	return gin.H{
		"token": result.Token,
		"user": gin.H{
			"id":    result.UserID,
			"name":  result.Name,
			"email": result.Email,
			"role":  result.Role,
		},
	}
}
