package middleware

import (
	"net/http"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/cache"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware는 IP 기반 rate limiting 미들웨어입니다
func RateLimitMiddleware(limiter *cache.RateLimiter, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientIP := c.ClientIP()

		allowed, err := limiter.Allow(ctx, clientIP, limit, window)
		if err != nil {
			logger.Error(ctx, "rate limit check failed",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			// 확인 실패 시에는 요청을 통과시킴 (fail open)
			c.Next()
			return
		}

		if !allowed {
			logger.Warn(ctx, "rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.Int64("limit", limit),
				zap.Duration("window", window),
			)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
