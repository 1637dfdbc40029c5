package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	redisrepo "github.com/maintdesk/access-service/internal/repository/redis"
)

func newRateLimitedRouter(t *testing.T, limit int, window time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := redisrepo.NewRateLimitStore(client, redisrepo.SlidingWindowConfig{
		KeyPrefix: "test:ratelimit",
		TTL:       window * 2,
	})
	limiter := NewRateLimiter(store, nil)

	router := gin.New()
	router.GET("/limited", limiter.RateLimit(RateLimitRule{
		Name:       "test",
		Limit:      limit,
		Window:     window,
		Identifier: ClientIPIdentifier(),
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimitAllowsUpToLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limited", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over-limit status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected a Retry-After header on the rejected request")
	}
}

func TestRateLimitSetsHeaders(t *testing.T) {
	router := newRateLimitedRouter(t, 5, time.Minute)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limited", nil))

	if got := rec.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Fatalf("X-RateLimit-Limit = %q, want 5", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Fatalf("X-RateLimit-Remaining = %q, want 4", got)
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Fatal("expected an X-RateLimit-Reset header")
	}
}

func TestRateLimitFailsOpenWhenStoreUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })

	store := redisrepo.NewRateLimitStore(client, redisrepo.SlidingWindowConfig{KeyPrefix: "test"})
	limiter := NewRateLimiter(store, nil)

	router := gin.New()
	router.GET("/limited", limiter.RateLimit(RateLimitRule{
		Name:       "test",
		Limit:      1,
		Window:     time.Minute,
		Identifier: ClientIPIdentifier(),
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when the limiter store is down", rec.Code)
	}
}
