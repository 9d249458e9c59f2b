// Package httpkit provides HTTP middleware infrastructure.
package httpkit

import (
	"context"
	"strings"
	"sync"
	"time"

	"bounce_rentals_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// WindowStore counts requests per client within fixed time windows.
// Implementations decide where the counters live.
type WindowStore interface {
	// Take records one request for the key and reports whether it is
	// within the allowed budget for the current window.
	Take(ctx context.Context, key string, max int, window time.Duration) (bool, error)
}

// FixedWindowLimiter applies a fixed-window counting policy per client
// identifier. Bursts are possible at window boundaries; that tradeoff is
// accepted for the low-stakes quote endpoint.
type FixedWindowLimiter struct {
	store  WindowStore
	max    int
	window time.Duration
	log    *logger.Logger
}

// NewFixedWindowLimiter creates a fixed-window limiter with the given policy.
func NewFixedWindowLimiter(store WindowStore, max int, window time.Duration, log *logger.Logger) *FixedWindowLimiter {
	return &FixedWindowLimiter{store: store, max: max, window: window, log: log}
}

// Allow reports whether the request from the given client identifier is
// within budget. Store failures fail open: a broken counter backend must
// not take the quote form down with it.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	allowed, err := l.store.Take(ctx, key, l.max, l.window)
	if err != nil {
		if l.log != nil {
			l.log.Warn("rate limit store failure, allowing request", "error", err)
		}
		return true
	}
	return allowed
}

// ClientIdentifier derives the rate-limit key from proxy headers: the first
// forwarded-for address, else the real-IP header, else the literal "unknown".
func ClientIdentifier(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.GetHeader("X-Real-IP")); realIP != "" {
		return realIP
	}
	return "unknown"
}

// =============================================================================
// In-memory store
// =============================================================================

type windowHit struct {
	count       int
	windowStart time.Time
}

// MemoryWindowStore keeps fixed-window counters in process memory.
// Suitable for single-instance deployments only; a horizontally scaled
// deployment should use RedisWindowStore so instances share counters.
type MemoryWindowStore struct {
	mu   sync.Mutex
	hits map[string]*windowHit
	now  func() time.Time
}

// NewMemoryWindowStore creates an in-memory window store.
func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{
		hits: make(map[string]*windowHit),
		now:  time.Now,
	}
}

// Take implements WindowStore.
func (s *MemoryWindowStore) Take(_ context.Context, key string, max int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	hit, ok := s.hits[key]
	if !ok || now.Sub(hit.windowStart) > window {
		s.hits[key] = &windowHit{count: 1, windowStart: now}
		return true, nil
	}

	if hit.count >= max {
		return false, nil
	}

	hit.count++
	return true, nil
}

// =============================================================================
// Redis-backed store
// =============================================================================

// RedisWindowStore keeps fixed-window counters in Redis so that multiple
// instances share the same budget. Same accept/reject contract as the
// in-memory store.
type RedisWindowStore struct {
	client *redis.Client
}

// NewRedisWindowStore creates a Redis-backed window store.
func NewRedisWindowStore(client *redis.Client) *RedisWindowStore {
	return &RedisWindowStore{client: client}
}

// Take implements WindowStore. The window starts with the first request for
// a key: INCR creates the counter and the expiry is set only on creation,
// so later requests in the window never extend it.
func (s *RedisWindowStore) Take(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	redisKey := "ratelimit:" + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(max), nil
}
