package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	pkglogger "github.com/prostore/storefront/pkg/logger"
	"github.com/prostore/storefront/pkg/ratelimit"
)

// GinRateLimitMiddleware Gin 限流中间件，按客户端 IP 限流
func GinRateLimitMiddleware(limiter ratelimit.RateLimiter, rate int, period time.Duration) gin.HandlerFunc {
	limit := ratelimit.Limit{
		Rate:   rate,
		Period: period,
		Burst:  rate,
	}

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		res, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			// 限流器不可用时放行，不阻塞业务
			pkglogger.Warn(c.Request.Context(), "Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !res.Allowed {
			c.AbortWithStatusJSON(429, gin.H{
				"success": false,
				"message": "Too many requests",
			})
			return
		}

		c.Next()
	}
}
