package handler

import (
	"net/http"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/messaging/kafka"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/vault"
	"github.com/gin-gonic/gin"
)

// HealthHandler는 헬스체크 핸들러입니다
type HealthHandler struct {
	catalogRepo   repository.CatalogRepository
	cacheRepo     repository.CacheRepository
	vaultClient   *vault.Client
	kafkaProducer *kafka.Producer
	version       string
}

// NewHealthHandler는 새로운 HealthHandler를 생성합니다.
// cacheRepo, vaultClient, kafkaProducer는 비활성화된 구성에서 nil일 수 있습니다.
func NewHealthHandler(
	catalogRepo repository.CatalogRepository,
	cacheRepo repository.CacheRepository,
	vaultClient *vault.Client,
	kafkaProducer *kafka.Producer,
	version string,
) *HealthHandler {
	return &HealthHandler{
		catalogRepo:   catalogRepo,
		cacheRepo:     cacheRepo,
		vaultClient:   vaultClient,
		kafkaProducer: kafkaProducer,
		version:       version,
	}
}

// HealthResponse는 헬스체크 응답입니다
type HealthResponse struct {
	Status    string                 `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthCheck는 개별 의존성 체크 결과입니다
type HealthCheck struct {
	Status   string  `json:"status"` // "healthy", "unhealthy"
	Message  string  `json:"message,omitempty"`
	Duration float64 `json:"duration_ms"`
}

// Health godoc
// @Summary      Health check
// @Description  Check the health status of the service and its dependencies
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
		Checks:    make(map[string]HealthCheck),
	}

	// MongoDB는 필수 의존성이므로 실패하면 unhealthy
	mongoStart := time.Now()
	if err := h.catalogRepo.HealthCheck(ctx); err != nil {
		response.Checks["mongodb"] = HealthCheck{
			Status:   "unhealthy",
			Message:  err.Error(),
			Duration: float64(time.Since(mongoStart).Milliseconds()),
		}
		response.Status = "unhealthy"
	} else {
		response.Checks["mongodb"] = HealthCheck{
			Status:   "healthy",
			Duration: float64(time.Since(mongoStart).Milliseconds()),
		}
	}

	// Redis는 선택 의존성이므로 실패해도 degraded
	if h.cacheRepo != nil {
		redisStart := time.Now()
		if err := h.cacheRepo.Ping(ctx); err != nil {
			response.Checks["redis"] = HealthCheck{
				Status:   "unhealthy",
				Message:  err.Error(),
				Duration: float64(time.Since(redisStart).Milliseconds()),
			}
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
		} else {
			response.Checks["redis"] = HealthCheck{
				Status:   "healthy",
				Duration: float64(time.Since(redisStart).Milliseconds()),
			}
		}
	}

	if h.vaultClient != nil {
		vaultStart := time.Now()
		if err := h.vaultClient.HealthCheck(ctx); err != nil {
			response.Checks["vault"] = HealthCheck{
				Status:   "unhealthy",
				Message:  err.Error(),
				Duration: float64(time.Since(vaultStart).Milliseconds()),
			}
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
		} else {
			response.Checks["vault"] = HealthCheck{
				Status:   "healthy",
				Duration: float64(time.Since(vaultStart).Milliseconds()),
			}
		}
	}

	if h.kafkaProducer != nil {
		response.Checks["kafka"] = HealthCheck{
			Status:  "healthy",
			Message: "producer initialized",
		}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Ready godoc
// @Summary      Readiness check
// @Description  Check if the service is ready to accept traffic (Kubernetes readiness probe)
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	// 필수 의존성만 확인
	if err := h.catalogRepo.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "storage connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}
