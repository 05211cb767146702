package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/cinema-booking-engine/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testRateLimitConfig = RateLimitConfig{
	Enabled:        true,
	Capacity:       5,
	RefillTokens:   1,
	RefillInterval: time.Second,
	Prefix:         "rl",
}

func expectBucket(client *mocks.MockRedisClient, key string, result *redis.Cmd) {
	client.On("EvalSha", mock.Anything, mock.Anything, []string{key},
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(result)
}

func TestRateLimiter(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		remoteAddr    string
		key           string
		result        *redis.Cmd
		wantStatus    int
		wantRemaining string
		wantRetry     string
	}{
		{
			name:          "allowed for authenticated user",
			userID:        7,
			key:           "rl:user:7",
			result:        redis.NewCmdResult([]interface{}{int64(1), int64(4), int64(0)}, nil),
			wantStatus:    http.StatusOK,
			wantRemaining: "4",
		},
		{
			name:          "anonymous request keyed by address",
			remoteAddr:    "10.0.0.5:51234",
			key:           "rl:ip:10.0.0.5",
			result:        redis.NewCmdResult([]interface{}{int64(1), int64(0), int64(0)}, nil),
			wantStatus:    http.StatusOK,
			wantRemaining: "0",
		},
		{
			name:          "bucket empty",
			userID:        7,
			key:           "rl:user:7",
			result:        redis.NewCmdResult([]interface{}{int64(0), int64(0), int64(1500)}, nil),
			wantStatus:    http.StatusTooManyRequests,
			wantRemaining: "0",
			wantRetry:     "2",
		},
		{
			name:       "redis unavailable lets the request through",
			userID:     7,
			key:        "rl:user:7",
			result:     redis.NewCmdResult(nil, errors.New("connection refused")),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockRedisClient)
			expectBucket(client, tt.key, tt.result)

			limiter := NewRateLimiter(client, testRateLimitConfig, slog.New(slog.NewTextHandler(io.Discard, nil)))

			handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
			if tt.remoteAddr != "" {
				req.RemoteAddr = tt.remoteAddr
			}
			if tt.userID != 0 {
				req = req.WithContext(ContextWithUserID(req.Context(), tt.userID))
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantRemaining, rr.Header().Get("X-RateLimit-Remaining"))
			assert.Equal(t, tt.wantRetry, rr.Header().Get("Retry-After"))

			client.AssertExpectations(t)
		})
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	client := new(mocks.MockRedisClient)
	cfg := testRateLimitConfig
	cfg.Enabled = false

	limiter := NewRateLimiter(client, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/bookings", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	client.AssertNotCalled(t, "EvalSha")
}
