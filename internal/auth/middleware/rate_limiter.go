package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/redis"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/response"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

// RateLimiterConfig 限流配置
type RateLimiterConfig struct {
	// 时间窗口内允许的最大请求数
	MaxRequests int
	// 时间窗口（秒）
	WindowSeconds int
	// key 前缀，区分不同端点的配额
	Scope string
}

// 滑动窗口：score 为毫秒时间戳，member 唯一，同一毫秒内的请求不会合并
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local current = redis.call('ZCARD', key)

if current < limit then
	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window)
	return {1, limit - current - 1, now + window}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')[2]
return {0, 0, tonumber(oldest) + window}
`

// RateLimiter 基于 Redis 的按用户滑动窗口限流，需放在 RequireIdentity 之后。
// Redis 故障时放行请求。
func RateLimiter(redisClient *redis.Client, cfg RateLimiterConfig, log *logger.Logger) gin.HandlerFunc {
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = 60
	}
	if cfg.Scope == "" {
		cfg.Scope = "api"
	}

	return func(c *gin.Context) {
		key := buildRateLimitKey(c, cfg.Scope)

		allowed, remaining, resetAtMs, err := checkRateLimit(c.Request.Context(), redisClient, key, cfg)
		if err != nil {
			log.Error("rate limiter error", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAtMs/1000, 10))

		if !allowed {
			retryAfter := (resetAtMs - time.Now().UnixMilli() + 999) / 1000
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.ErrorWithCode(c, apperrors.ErrTooManyRequests,
				fmt.Sprintf("try again in %d seconds", retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}

// buildRateLimitKey 已认证请求按用户限流，否则按 IP
func buildRateLimitKey(c *gin.Context, scope string) string {
	if userID, ok := GetUserID(c); ok {
		return fmt.Sprintf("rate_limit:%s:user:%s", scope, userID)
	}
	return fmt.Sprintf("rate_limit:%s:ip:%s", scope, validator.ClientIPKey(c.ClientIP(), "unknown"))
}

func checkRateLimit(ctx context.Context, redisClient *redis.Client, key string, cfg RateLimiterConfig) (allowed bool, remaining int, resetAtMs int64, err error) {
	now := time.Now().UnixMilli()
	windowMs := int64(cfg.WindowSeconds) * 1000

	result, err := redisClient.Eval(ctx, slidingWindowScript, []string{key},
		now, windowMs, cfg.MaxRequests, fmt.Sprintf("%d-%s", now, uuid.NewString()))
	if err != nil {
		return false, 0, 0, err
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return false, 0, 0, fmt.Errorf("invalid rate limit result: %v", result)
	}

	allowedInt, _ := values[0].(int64)
	remainingInt, _ := values[1].(int64)
	resetInt, _ := values[2].(int64)

	return allowedInt == 1, int(remainingInt), resetInt, nil
}
