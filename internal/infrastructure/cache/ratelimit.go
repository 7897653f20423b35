package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter는 Redis 기반 속도 제한기입니다
type RateLimiter struct {
	client *redis.Client
	prefix string
}

// NewRateLimiter는 새로운 속도 제한기를 생성합니다
func NewRateLimiter(client *redis.Client, prefix string) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
	}
}

// Allow는 요청을 허용할지 확인합니다 (고정 윈도우 카운터).
// 카운터 증가와 만료 설정은 Lua 스크립트로 원자적으로 처리됩니다.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	fullKey := fmt.Sprintf("%s:%s", rl.prefix, key)

	script := redis.NewScript(`
		local key = KEYS[1]
		local limit = tonumber(ARGV[1])
		local window = tonumber(ARGV[2])
		local current = tonumber(redis.call('GET', key) or "0")

		if current < limit then
			redis.call('INCR', key)
			if current == 0 then
				redis.call('EXPIRE', key, window)
			end
			return 1
		else
			return 0
		end
	`)

	result, err := script.Run(ctx, rl.client, []string{fullKey}, limit, int64(window.Seconds())).Int()
	if err != nil {
		logger.Error(ctx, "rate limit check failed",
			logger.Field("key", key),
			zap.Error(err),
		)
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	allowed := result == 1
	if !allowed {
		logger.Debug(ctx, "rate limit exceeded",
			logger.Field("key", key),
			logger.Field("limit", limit),
		)
	}

	return allowed, nil
}

// Reset은 속도 제한을 초기화합니다
func (rl *RateLimiter) Reset(ctx context.Context, key string) error {
	fullKey := fmt.Sprintf("%s:%s", rl.prefix, key)
	return rl.client.Del(ctx, fullKey).Err()
}
