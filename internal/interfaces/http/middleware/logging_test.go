package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(middleware.LoggingMiddleware())
	engine.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/fail", func(c *gin.Context) {
		// 핸들러가 컨텍스트에 누적한 에러도 로깅 경로를 거칩니다
		_ = c.Error(errors.New("downstream failure"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"success path", "/ok", http.StatusOK},
		{"error path with context errors", "/fail?verbose=1", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
