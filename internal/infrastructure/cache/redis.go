package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss는 키가 캐시에 없을 때 반환됩니다
var ErrCacheMiss = errors.New("cache miss")

// Config는 Redis 설정입니다
type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisCache는 Redis 기반 캐시 저장소입니다
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache는 새로운 Redis 캐시 저장소를 생성합니다
func NewRedisCache(cfg *Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   3,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// 연결 확인
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

var _ repository.CacheRepository = (*RedisCache)(nil)

// Get은 캐시에서 값을 가져와 dest에 역직렬화합니다.
// 키가 없으면 ErrCacheMiss를 반환합니다.
func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	defer func() {
		logger.Debug(ctx, "cache get operation",
			zap.String("key", key),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
	} else if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

// Set은 값을 JSON으로 직렬화해 캐시에 저장합니다
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	start := time.Now()
	defer func() {
		logger.Debug(ctx, "cache set operation",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete는 캐시에서 값을 삭제합니다
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// Ping은 Redis 연결 상태를 확인합니다
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close는 Redis 연결을 종료합니다
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// GetClient는 Redis 클라이언트를 반환합니다 (rate limiter 등 부가 기능용)
func (r *RedisCache) GetClient() *redis.Client {
	return r.client
}
