package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func rateLimitedHandler(t *testing.T, limit int, window time.Duration) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	config := RateLimitConfig{
		RequestsPerWindow: limit,
		Window:            window,
		KeyPrefix:         "ratelimit:test",
	}
	handler := RateLimitMiddleware(client, config, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return handler, mr
}

func hit(handler http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware_AllowsUnderTheLimit(t *testing.T) {
	handler, _ := rateLimitedHandler(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if rec := hit(handler); rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitMiddleware_BlocksOverTheLimit(t *testing.T) {
	handler, _ := rateLimitedHandler(t, 2, time.Minute)

	hit(handler)
	hit(handler)
	rec := hit(handler)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected a Retry-After header")
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("Expected zero remaining, got %q", got)
	}
}

func TestRateLimitMiddleware_WindowExpiryResetsTheCounter(t *testing.T) {
	handler, mr := rateLimitedHandler(t, 1, time.Minute)

	if rec := hit(handler); rec.Code != http.StatusOK {
		t.Fatalf("Expected the first request through, got %d", rec.Code)
	}
	if rec := hit(handler); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected the second request blocked, got %d", rec.Code)
	}

	mr.FastForward(2 * time.Minute)

	if rec := hit(handler); rec.Code != http.StatusOK {
		t.Errorf("Expected the counter reset after the window, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware_SeparateClientsHaveSeparateBudgets(t *testing.T) {
	handler, _ := rateLimitedHandler(t, 1, time.Minute)

	hit(handler)
	if rec := hit(handler); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected the repeat client blocked, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected a different client to pass, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware_RedisDownFailsOpen(t *testing.T) {
	handler, mr := rateLimitedHandler(t, 1, time.Minute)
	mr.Close()

	if rec := hit(handler); rec.Code != http.StatusOK {
		t.Errorf("Expected requests to pass when redis is unreachable, got %d", rec.Code)
	}
}
