// Package ratelimit limits how many evaluations a single client may request
// per window.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const bucketCleanupThreshold = 1 * time.Hour

// Limiter decides whether a client identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryLimiter is a per-process token bucket. Buckets are refilled in full
// once per window.
type MemoryLimiter struct {
	mu        sync.Mutex
	capacity  int
	refillDur time.Duration
	clients   map[string]*clientBucket
	now       func() time.Time
}

// NewMemoryLimiter creates a limiter allowing capacity requests per refillDur
func NewMemoryLimiter(capacity int, refillDur time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		capacity:  capacity,
		refillDur: refillDur,
		clients:   make(map[string]*clientBucket),
		now:       time.Now,
	}
}

// Allow consumes a token for key
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bucket, exists := l.clients[key]
	if !exists {
		l.clients[key] = &clientBucket{
			tokens:     l.capacity - 1,
			lastRefill: now,
		}
		return true, nil
	}

	if now.Sub(bucket.lastRefill) >= l.refillDur {
		bucket.tokens = l.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false, nil
	}

	bucket.tokens--
	return true, nil
}

// Cleanup drops buckets idle for longer than an hour. It returns the number
// of buckets removed.
func (l *MemoryLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, bucket := range l.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// RedisLimiter is a fixed-window counter shared by every instance using the
// same Redis
type RedisLimiter struct {
	client   *redis.Client
	capacity int
	window   time.Duration
	prefix   string
	now      func() time.Time
}

// NewRedisLimiter creates a limiter backed by the Redis server at addr
func NewRedisLimiter(addr string, capacity int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   redis.NewClient(&redis.Options{Addr: addr}),
		capacity: capacity,
		window:   window,
		prefix:   "loan-score:ratelimit:",
		now:      time.Now,
	}
}

// Allow increments the counter for key in the current window
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s%s:%d", l.prefix, key, l.now().UnixNano()/int64(l.window))

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return incr.Val() <= int64(l.capacity), nil
}

// Ping checks connectivity to Redis
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
