package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisRouter(t *testing.T, client *redis.Client, rps float64, burst int, window time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedisRateLimitMiddleware(client, rps, burst, window))
	r.GET("/r", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRedisRateLimitMiddleware_Basic(t *testing.T) {
	m := mr.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// one request per minute
	r := redisRouter(t, client, 0, 1, time.Minute)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/r", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/r", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// a different client has its own window
	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/r", "10.0.0.9:4321"))

	// window keys expire
	for _, k := range m.Keys() {
		assert.Greater(t, m.TTL(k), time.Duration(0))
	}
}

func TestRedisRateLimitMiddleware_NilClientFallsBack(t *testing.T) {
	r := redisRouter(t, nil, 0.5, 1, time.Second)

	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/r", ""))
	require.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/r", ""))
}

func TestRedisRateLimitMiddleware_RedisDown(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	m.Close()

	r := redisRouter(t, client, 1, 0, time.Second)
	require.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/r", ""))
}
