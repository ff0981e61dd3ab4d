package middleware

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"tasks_api/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis INCR/EXPIRE.
// A limiter without a client lets every request through.
type RateLimiter struct {
	client redis.Cmdable
	closer io.Closer
}

// NewRedisRateLimiter connects to addr. If addr is empty or the ping fails the
// limiter is returned disabled so the API stays available.
func NewRedisRateLimiter(addr, password string, db int) *RateLimiter {
	if addr == "" {
		return &RateLimiter{}
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "addr", addr, "error", err)
		_ = client.Close()
		return &RateLimiter{}
	}
	logger.Info("redis rate limiter enabled", "addr", addr)
	return &RateLimiter{client: client, closer: client}
}

func (l *RateLimiter) Enabled() bool {
	return l != nil && l.client != nil
}

func (l *RateLimiter) Close() error {
	if !l.Enabled() || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Limit allows maxRequests per window per client IP.
// key format: rl:<window_seconds>:<ip>
func (l *RateLimiter) Limit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Enabled() {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		ctx := c.Request.Context()

		val, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
		if val == 1 {
			// a counter without a TTL would block this IP forever
			if err := l.client.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("rate limiter expire failed", "key", key, "error", err)
				l.client.Del(ctx, key)
				c.Header("X-RateLimit-Error", "redis-error")
				c.Next()
				return
			}
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
