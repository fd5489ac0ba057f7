package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a sliding-window limiter over a redis sorted set. It
// protects the claim endpoint from a single client hammering submissions
// faster than the daily cap alone would catch.
type RedisLimiter struct {
	client         *redis.Client
	requestsPerMin int
}

func NewRedisLimiter(client *redis.Client, requestsPerMinute int) *RedisLimiter {
	return &RedisLimiter{
		client:         client,
		requestsPerMin: requestsPerMinute,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.requestsPerMin <= 0 {
		return true, nil
	}

	now := time.Now()
	window := time.Minute
	redisKey := fmt.Sprintf("ratelimit:claims:%s", key)
	windowStart := now.Add(-window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(l.requestsPerMin), nil
}
