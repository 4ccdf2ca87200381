package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prostore/storefront/internal/auth/application"
	"github.com/prostore/storefront/internal/auth/domain"
	"github.com/prostore/storefront/pkg/response"
)

const (
	identityKey = "identity"

	// SessionTokenCookie 会话令牌 Cookie 名
	SessionTokenCookie = "session_token"
	// SessionCartCookie 匿名会话购物车 Cookie 名
	SessionCartCookie = "session_cart_id"

	sessionCartCookieMaxAge = 30 * 24 * 3600
)

// IdentityMiddleware 解析请求身份：优先校验会话令牌，匿名请求保证会话购物车 Cookie 存在
func IdentityMiddleware(auth *application.AuthApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if identity, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(identityKey, identity)
				c.Next()
				return
			}
		}

		sessionCartID, err := c.Cookie(SessionCartCookie)
		if err != nil || sessionCartID == "" {
			sessionCartID = uuid.New().String()
			c.SetCookie(SessionCartCookie, sessionCartID, sessionCartCookieMaxAge, "/", "", false, true)
		}

		c.Set(identityKey, domain.Identity{SessionCartID: sessionCartID})
		c.Next()
	}
}

// RequireAuth 要求已登录，未登录返回 401 并附带登录页跳转
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAuthenticated() {
			response.ErrorWithRedirect(c, http.StatusUnauthorized, "Authentication required", "/sign-in")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 要求管理员角色
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if !identity.IsAuthenticated() {
			response.ErrorWithRedirect(c, http.StatusUnauthorized, "Authentication required", "/sign-in")
			c.Abort()
			return
		}
		if !identity.IsAdmin() {
			response.Error(c, http.StatusForbidden, "Admin permission required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity 获取当前请求身份
func CurrentIdentity(c *gin.Context) domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(domain.Identity); ok {
			return identity
		}
	}
	return domain.Identity{}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if token, err := c.Cookie(SessionTokenCookie); err == nil {
		return token
	}
	return ""
}
