package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

type memoryCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
}

func (m *memoryCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return redis.NewIntResult(m.counts[key], nil)
}

func (m *memoryCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if m.expires == nil {
		m.expires = make(map[string]time.Duration)
	}
	m.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func newLimitedRouter(counter Counter, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/fn", RateLimit(counter, "fn", limit, time.Minute, func(c *gin.Context) string { return "client" }), func(c *gin.Context) {
		c.String(200, "ok")
	})
	return r
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	counter := &memoryCounter{}
	r := newLimitedRouter(counter, 2)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fn", nil))
		codes = append(codes, w.Code)
	}
	require.Equal(t, []int{200, 200, 429}, codes)
	require.Equal(t, time.Minute, counter.expires["rl:fn:client"])
}

func TestRateLimitDisabled(t *testing.T) {
	r := newLimitedRouter(nil, 1)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fn", nil))
		require.Equal(t, 200, w.Code)
	}
}

func TestRequestIDEchoesHeader(t *testing.T) {
	r := newLimitedRouter(nil, 0)
	req := httptest.NewRequest(http.MethodGet, "/fn", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fn", nil))
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
