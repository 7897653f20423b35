package middleware

import (
	"net/http"

	"github.com/YouSangSon/movie-catalog-service/internal/auth"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AdminPasswordHeader는 변경 요청이 관리자 비밀번호를 싣는 헤더입니다
const AdminPasswordHeader = "admin-password"

// AdminAuthMiddleware는 변경 요청의 관리자 비밀번호를 검증합니다.
// 검증에 실패하면 상태 변경 없이 401로 요청을 중단합니다.
func AdminAuthMiddleware(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(AdminPasswordHeader)

		if !gate.Authorize(supplied) {
			ctx := c.Request.Context()
			logger.Warn(ctx, "unauthorized mutation attempt",
				logger.HTTPMethod(c.Request.Method),
				logger.HTTPPath(c.Request.URL.Path),
				logger.RemoteAddr(c.ClientIP()),
			)

			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
