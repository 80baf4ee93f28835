package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(handlers...)
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	engine.GET("/things", ok)
	engine.POST("/things", ok)
	return engine
}

func serve(engine *gin.Engine, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/things", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_LimitsMutationsOnly(t *testing.T) {
	limiter := NewRateLimiterWithConfig(2, time.Minute)
	engine := newTestEngine(limiter.Middleware())

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost).Code)

	w := serve(engine, http.MethodPost)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "SYS-020001")

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet).Code)
	}

	limiter.Reset()
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost).Code)
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	limiter := NewRateLimiterWithConfig(1, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.allow("a"))
	assert.False(t, limiter.allow("a"))
	assert.True(t, limiter.allow("b"))

	now = now.Add(2 * time.Minute)
	limiter.Cleanup()
	assert.Empty(t, limiter.entries)
	assert.True(t, limiter.allow("a"))
}

func TestRateLimiter_DisabledWhenNonPositive(t *testing.T) {
	engine := newTestEngine(NewRateLimiterWithConfig(0, time.Minute).Middleware())
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost).Code)
	}
}

func TestRequestID(t *testing.T) {
	engine := newTestEngine(RequestID())

	w := serve(engine, http.MethodGet)
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)

	incoming := uuid.NewString()
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	req.Header.Set(RequestIDHeader, incoming)
	engine.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
}
