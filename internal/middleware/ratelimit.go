package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/ai-survey-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	// SubmitRateLimitWindow is the counting window for submissions per IP.
	SubmitRateLimitWindow = 10 * time.Minute
	// SubmitRateLimitMaxRequests is the number of submissions allowed per window.
	SubmitRateLimitMaxRequests = 10
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "survey:ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs
	BlockedIPKeyPrefix = "survey:blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked once over the limit
	BlockedIPDuration = time.Hour
)

// RedisRateLimiter counts requests per client IP in Redis so the limit is
// shared by every server instance.
type RedisRateLimiter struct {
	client   *redis.Client
	log      *logger.Logger
	clientIP func(*http.Request) string

	Window      time.Duration
	MaxRequests int
	BlockFor    time.Duration
}

// NewRedisRateLimiter uses the submission defaults; callers may adjust the
// exported fields before use.
func NewRedisRateLimiter(client *redis.Client, clientIP func(*http.Request) string, log *logger.Logger) *RedisRateLimiter {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisRateLimiter{
		client:      client,
		log:         log.With("middleware", "RedisRateLimiter"),
		clientIP:    clientIP,
		Window:      SubmitRateLimitWindow,
		MaxRequests: SubmitRateLimitMaxRequests,
		BlockFor:    BlockedIPDuration,
	}
}

// Allow records one request for ip and reports whether it is within the limit
// along with the remaining budget. Redis errors are returned to the caller.
func (l *RedisRateLimiter) Allow(ctx context.Context, ip string) (bool, int, error) {
	blockedKey := BlockedIPKeyPrefix + ip
	blocked, err := l.client.Exists(ctx, blockedKey).Result()
	if err != nil {
		return false, 0, err
	}
	if blocked > 0 {
		return false, 0, nil
	}

	rateLimitKey := RateLimitKeyPrefix + ip
	n, err := l.client.Incr(ctx, rateLimitKey).Result()
	if err != nil {
		return false, 0, err
	}
	// First request in this window
	if n == 1 {
		if err := l.client.Expire(ctx, rateLimitKey, l.Window).Err(); err != nil {
			return false, 0, err
		}
	}

	count := int(n)
	if count > l.MaxRequests {
		if err := l.client.Set(ctx, blockedKey, "1", l.BlockFor).Err(); err != nil {
			return false, 0, err
		}
		return false, 0, nil
	}
	return true, l.MaxRequests - count, nil
}

// Middleware rejects requests over the limit with 429. When Redis is
// unavailable the request is allowed (fail open).
func (l *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)

		ok, remaining, err := l.Allow(r.Context(), ip)
		if err != nil {
			l.log.Warn("rate limiter unavailable, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(l.BlockFor.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(fmt.Sprintf(`{"success":false,"message":"Too many submissions. Please try again later.","retry_after":%d}`, int(l.BlockFor.Seconds()))))
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.MaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		next.ServeHTTP(w, r)
	})
}
