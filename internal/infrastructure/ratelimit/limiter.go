// Package ratelimit throttles prediction requests per client.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ressKim-io/CerviGuard/internal/infrastructure/config"
)

// Limiter decides whether a client may make another request
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// New picks the Redis limiter when a client is given, the in-process one otherwise
func New(cfg *config.RateLimitConfig, redisClient *redis.Client, logger *zap.Logger) (Limiter, error) {
	if redisClient != nil {
		return NewRedisLimiter(redisClient, cfg.RequestsPerMinute, logger), nil
	}
	return NewMemoryLimiter(cfg.RequestsPerMinute, cfg.Burst, cfg.CacheSize)
}

const (
	keyPrefix = "cerviguard:ratelimit:"
	window    = time.Minute
)

// RedisLimiter is a fixed one minute window counter shared by all replicas.
// It fails open when Redis is unavailable.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	logger *zap.Logger
	now    func() time.Time
}

// NewRedisLimiter creates a RedisLimiter allowing limit requests per minute
func NewRedisLimiter(client *redis.Client, limit int, logger *zap.Logger) *RedisLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLimiter{
		client: client,
		limit:  int64(limit),
		logger: logger,
		now:    time.Now,
	}
}

// Allow increments the client's counter for the current window
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	slot := l.now().Unix() / int64(window/time.Second)
	redisKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, slot)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("Rate limit check failed, allowing request",
			zap.String("key", key),
			zap.Error(err),
		)
		return true
	}

	return incr.Val() <= l.limit
}

// MemoryLimiter keeps a token bucket per client in a bounded LRU
type MemoryLimiter struct {
	buckets *lru.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

// NewMemoryLimiter creates a MemoryLimiter refilling perMinute tokens a minute
func NewMemoryLimiter(perMinute, burst, size int) (*MemoryLimiter, error) {
	if perMinute <= 0 {
		return nil, fmt.Errorf("requests per minute must be positive, got %d", perMinute)
	}
	if burst <= 0 {
		burst = 1
	}

	buckets, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create limiter cache: %w", err)
	}

	return &MemoryLimiter{
		buckets: buckets,
		limit:   rate.Every(window / time.Duration(perMinute)),
		burst:   burst,
	}, nil
}

// Allow takes a token from the client's bucket
func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	return l.bucket(key).Allow()
}

func (l *MemoryLimiter) bucket(key string) *rate.Limiter {
	if b, ok := l.buckets.Get(key); ok {
		return b
	}
	b := rate.NewLimiter(l.limit, l.burst)
	if prev, ok, _ := l.buckets.PeekOrAdd(key, b); ok {
		return prev
	}
	return b
}
