package middleware

import (
	"strconv"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware는 Prometheus 메트릭을 수집합니다
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.GetMetrics()

	return func(c *gin.Context) {
		start := time.Now()

		// 요청 처리
		c.Next()

		// 라우트 템플릿을 레이블로 사용 (카디널리티 제한)
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
