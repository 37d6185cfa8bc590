// README: Tests for the request pipeline middleware.
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/http/middleware"
	"atlas/internal/logger"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/deadline", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})
	return r
}

func do(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthDisabledWithoutKey(t *testing.T) {
	r := newEngine(middleware.Auth(""))
	assert.Equal(t, http.StatusOK, do(r, "/ping", nil).Code)
}

func TestAuth(t *testing.T) {
	r := newEngine(middleware.Auth("s3cret"))

	assert.Equal(t, http.StatusUnauthorized, do(r, "/ping", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/ping", map[string]string{middleware.APIKeyHeader: "wrong"}).Code)

	w := do(r, "/ping", map[string]string{middleware.APIKeyHeader: "s3cret"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine(middleware.RequestID())

	w := do(r, "/ping", nil)
	generated := w.Header().Get(middleware.RequestIDHeader)
	require.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = do(r, "/ping", map[string]string{middleware.RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := newEngine(middleware.RequestID(), middleware.Logging(logger.NewTestLogger(t)), middleware.Recovery(logger.NewTestLogger(t)))

	w := do(r, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	// 20/min gives a burst of 2.
	r := newEngine(middleware.RateLimit(20))

	assert.Equal(t, http.StatusOK, do(r, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, "/ping", nil).Code)

	w := do(r, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// Other clients have their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(middleware.RateLimit(0))
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, do(r, "/ping", nil).Code)
	}
}

func TestTimeout(t *testing.T) {
	r := newEngine(middleware.Timeout(time.Second))
	assert.JSONEq(t, `{"deadline":true}`, do(r, "/deadline", nil).Body.String())

	r = newEngine(middleware.Timeout(0))
	assert.JSONEq(t, `{"deadline":false}`, do(r, "/deadline", nil).Body.String())
}

func TestMetricsDoesNotAlterResponse(t *testing.T) {
	r := newEngine(middleware.Metrics())
	assert.Equal(t, http.StatusOK, do(r, "/ping", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, "/nope", nil).Code)
}
