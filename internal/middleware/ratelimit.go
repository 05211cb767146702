package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucket refills the bucket stored at KEYS[1] and takes one token.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	Prefix         string
}

type RateLimiter struct {
	client redis.Scripter
	cfg    RateLimitConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewRateLimiter(client redis.Scripter, cfg RateLimitConfig, logger *slog.Logger) *RateLimiter {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "rl"
	}

	return &RateLimiter{
		client: client,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Limit applies a per user token bucket, falling back to the client address
// for anonymous requests. Redis failures let the request through.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	if !l.cfg.Enabled || l.client == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.key(r)

		ttl := int64(math.Ceil((time.Duration(l.cfg.Capacity/l.cfg.RefillTokens+1) * l.cfg.RefillInterval).Seconds()))

		result, err := tokenBucket.Run(r.Context(), l.client, []string{key},
			l.now().UnixMilli(),
			l.cfg.Capacity,
			l.cfg.RefillTokens,
			l.cfg.RefillInterval.Milliseconds(),
			ttl,
		).Int64Slice()
		if err != nil || len(result) != 3 {
			l.logger.Warn("rate limiter unavailable", "key", key, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, retryMs := result[0] == 1, result[1], result[2]

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Capacity))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			retryAfter := int(math.Ceil(float64(retryMs) / 1000))
			writeError(w, r, http.StatusTooManyRequests, "Rate limit exceeded, please retry later", http.Header{
				"Retry-After": []string{strconv.Itoa(retryAfter)},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) key(r *http.Request) string {
	if userID, ok := UserIDFromContext(r.Context()); ok {
		return fmt.Sprintf("%s:user:%d", l.cfg.Prefix, userID)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return strings.Join([]string{l.cfg.Prefix, "ip", host}, ":")
}
