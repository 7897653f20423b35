package router

import (
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/auth"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/cache"
	httpHandler "github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/handler"
	"github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options는 라우터 구성 옵션입니다
type Options struct {
	Environment   string
	EnableTracing bool
	EnableMetrics bool

	// RateLimiter는 nil이면 rate limiting을 비활성화합니다
	RateLimiter     *cache.RateLimiter
	RateLimit       int64
	RateLimitWindow time.Duration
}

// SetupRouter sets up all routes for the API server
func SetupRouter(
	movieHandler *httpHandler.MovieHandler,
	healthHandler *httpHandler.HealthHandler,
	gate *auth.Gate,
	opts Options,
) *gin.Engine {
	if opts.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global Middlewares
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())

	if opts.EnableTracing {
		router.Use(middleware.TracingMiddleware())
	}

	if opts.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}

	// ============================================
	// Health & Metrics Endpoints (no rate limit)
	// ============================================
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ============================================
	// API Group
	// ============================================
	api := router.Group("/api")
	if opts.RateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(opts.RateLimiter, opts.RateLimit, opts.RateLimitWindow))
	}
	{
		// 공개 엔드포인트
		api.GET("/movies", movieHandler.List)
		api.POST("/login", movieHandler.Login)

		// 변경 엔드포인트는 관리자 비밀번호 검증을 거칩니다
		admin := api.Group("/movies")
		admin.Use(middleware.AdminAuthMiddleware(gate))
		{
			admin.POST("", movieHandler.Create)
			admin.PUT("/:id", movieHandler.Update)
			admin.DELETE("/:id", movieHandler.Delete)
		}
	}

	return router
}
