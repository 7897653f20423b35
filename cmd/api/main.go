package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/YouSangSon/movie-catalog-service/internal/auth"
	"github.com/YouSangSon/movie-catalog-service/internal/config"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/cache"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/messaging/kafka"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/mongodb"
	httpHandler "github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/handler"
	"github.com/YouSangSon/movie-catalog-service/internal/interfaces/http/router"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/tracing"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/vault"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config-path", "", "path to the config directory")
	configName := flag.String("config-name", "config", "config file name without extension")
	flag.Parse()

	// 설정 로드
	cfg, err := config.LoadConfig(*configPath, *configName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 로거 초기화
	if err := logger.Init(&logger.Config{
		Environment: cfg.App.Environment,
		Level:       cfg.Observability.Logging.Level,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Vault (선택): 관리자 비밀번호와 MongoDB URI를 Vault에서 가져옵니다
	var vaultClient *vault.Client
	if cfg.Vault.Enabled {
		vaultClient, err = vault.NewClient(&vault.Config{
			Address:    cfg.Vault.Address,
			Token:      cfg.Vault.Token,
			AuthMethod: cfg.Vault.AuthMethod,
			RoleID:     cfg.Vault.RoleID,
			SecretID:   cfg.Vault.SecretID,
			Namespace:  cfg.Vault.Namespace,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to initialize vault client", zap.Error(err))
		}

		if cfg.Admin.UseVault {
			password, err := vaultClient.GetAdminPassword(ctx, cfg.Admin.VaultPath)
			if err != nil {
				logger.Fatal(ctx, "failed to fetch admin password from vault", zap.Error(err))
			}
			cfg.Admin.Password = password
		}
		if cfg.MongoDB.UseVault {
			uri, err := vaultClient.GetMongoDBURI(ctx, cfg.MongoDB.VaultPath)
			if err != nil {
				logger.Fatal(ctx, "failed to fetch mongodb uri from vault", zap.Error(err))
			}
			cfg.MongoDB.URI = uri
		}
	}

	// 시크릿 주입 이후에 검증해야 fail-closed가 성립합니다
	if err := cfg.Validate(); err != nil {
		logger.Fatal(ctx, "invalid configuration", zap.Error(err))
	}

	// 메트릭 초기화
	metrics.Init("movie_catalog")

	// 트레이싱 초기화
	shutdownTracing, err := tracing.Init(&tracing.Config{
		ServiceName:    cfg.Observability.Tracing.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		JaegerEndpoint: cfg.Observability.Tracing.JaegerEndpoint,
		Enabled:        cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to initialize tracing", zap.Error(err))
	}

	// Credential Gate
	gate, err := auth.NewGate(cfg.Admin.Password)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize credential gate", zap.Error(err))
	}

	// MongoDB 카탈로그 저장소
	catalogRepo, err := mongodb.NewCatalogRepository(&mongodb.Config{
		URI:            cfg.MongoDB.URI,
		Database:       cfg.MongoDB.Database,
		Collection:     cfg.MongoDB.Collection,
		MaxPoolSize:    cfg.MongoDB.MaxPoolSize,
		MinPoolSize:    cfg.MongoDB.MinPoolSize,
		ConnectTimeout: cfg.MongoDB.ConnectTimeout,
		Timeout:        cfg.MongoDB.Timeout,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect to MongoDB", zap.Error(err))
	}
	logger.Info(ctx, "connected to MongoDB", zap.String("database", cfg.MongoDB.Database))

	// Redis (선택): 목록 캐시 + rate limiter
	var cacheRepo repository.CacheRepository
	var rateLimiter *cache.RateLimiter
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(&cache.Config{
			Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = redisCache
		rateLimiter = cache.NewRateLimiter(redisCache.GetClient(), "api:ratelimit")
		logger.Info(ctx, "connected to Redis", zap.String("host", cfg.Redis.Host))
	}

	// Kafka (선택): 카탈로그 변경 이벤트
	var events repository.CatalogEventPublisher
	var kafkaProducer *kafka.Producer
	if cfg.Kafka.Enabled {
		kafkaProducer, err = kafka.NewProducer(&kafka.ProducerConfig{
			Brokers:          cfg.Kafka.Brokers,
			ClientID:         cfg.Kafka.ClientID,
			MaxMessageBytes:  cfg.Kafka.Producer.MaxMessageBytes,
			RequiredAcks:     sarama.RequiredAcks(cfg.Kafka.Producer.RequiredAcks),
			Compression:      parseCompression(cfg.Kafka.Producer.Compression),
			MaxRetries:       cfg.Kafka.Producer.MaxRetries,
			RetryBackoff:     cfg.Kafka.Producer.RetryBackoff,
			EnableIdempotent: cfg.Kafka.Producer.EnableIdempotent,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to create kafka producer", zap.Error(err))
		}
		events = kafka.NewCatalogPublisher(
			kafkaProducer,
			cfg.Kafka.Topics.MovieCreated,
			cfg.Kafka.Topics.MovieUpdated,
			cfg.Kafka.Topics.MovieDeleted,
		)
	}

	// UseCase 및 핸들러
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, cacheRepo, events)
	movieHandler := httpHandler.NewMovieHandler(catalogUC, gate)
	healthHandler := httpHandler.NewHealthHandler(catalogRepo, cacheRepo, vaultClient, kafkaProducer, cfg.App.Version)

	// 라우터
	engine := router.SetupRouter(movieHandler, healthHandler, gate, router.Options{
		Environment:     cfg.App.Environment,
		EnableTracing:   cfg.Observability.Tracing.Enabled,
		EnableMetrics:   cfg.Observability.Metrics.Enabled,
		RateLimiter:     rateLimiter,
		RateLimit:       cfg.Server.HTTP.RateLimit,
		RateLimitWindow: cfg.Server.HTTP.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
	}

	// 서버 시작
	go func() {
		logger.Info(ctx, "starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server failed", zap.Error(err))
		}
	}()

	// 종료 시그널 대기
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down server")

	shutdownTimeout := cfg.Server.HTTP.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server forced to shutdown", zap.Error(err))
	}

	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			logger.Error(ctx, "failed to close kafka producer", zap.Error(err))
		}
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			logger.Error(ctx, "failed to close redis connection", zap.Error(err))
		}
	}
	if err := catalogRepo.Close(shutdownCtx); err != nil {
		logger.Error(ctx, "failed to close MongoDB connection", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error(ctx, "failed to shutdown tracing", zap.Error(err))
	}

	logger.Info(ctx, "server stopped")
}

// parseCompression은 설정 문자열을 sarama 압축 코덱으로 변환합니다
func parseCompression(name string) sarama.CompressionCodec {
	switch name {
	case "gzip":
		return sarama.CompressionGZIP
	case "snappy":
		return sarama.CompressionSnappy
	case "lz4":
		return sarama.CompressionLZ4
	case "zstd":
		return sarama.CompressionZSTD
	default:
		return sarama.CompressionNone
	}
}
