package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func serveOnce(limiter *RateLimiter) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/generate", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/generate", nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestMiddlewareNilLimiterPassesThrough(t *testing.T) {
	var limiter *RateLimiter
	w := serveOnce(limiter)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareNilRedisPassesThrough(t *testing.T) {
	limiter := NewGenerationRateLimiter(nil)
	w := serveOnce(limiter)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareUnreachableRedisPassesThrough(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	limiter := NewGenerationRateLimiter(client)

	w := serveOnce(limiter)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}
