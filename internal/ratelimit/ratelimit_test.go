package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimiter(t *testing.T) (*miniredis.Miniredis, *Limiter) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, New(rdb)
}

func TestAllow_ExhaustsAndRecovers(t *testing.T) {
	mr, l := newLimiter(t)
	ctx := context.Background()

	for i := int64(1); i <= Login.Limit; i++ {
		d, err := l.Allow(ctx, Login, "10.0.0.1")
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !d.Allowed || d.Remaining != Login.Limit-i {
			t.Fatalf("allow %d: unexpected decision %+v", i, d)
		}
	}

	d, err := l.Allow(ctx, Login, "10.0.0.1")
	if err != nil {
		t.Fatalf("over limit: %v", err)
	}
	if d.Allowed || d.Remaining != 0 || d.RetryAfter <= 0 {
		t.Fatalf("expected rejection, got %+v", d)
	}

	other, _ := l.Allow(ctx, Login, "10.0.0.2")
	if !other.Allowed {
		t.Fatalf("expected separate budget per client")
	}
	reg, _ := l.Allow(ctx, Register, "10.0.0.1")
	if !reg.Allowed {
		t.Fatalf("expected separate budget per rule")
	}

	mr.FastForward(Login.Window)
	d, _ = l.Allow(ctx, Login, "10.0.0.1")
	if !d.Allowed {
		t.Fatalf("expected new window after expiry")
	}
}

func newRouter(l *Limiter, rule Rule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(l.Middleware(rule))
	r.POST("/auth/register", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func TestMiddleware_Rejects(t *testing.T) {
	_, l := newLimiter(t)
	r := newRouter(l, Register)

	for i := 0; i < int(Register.Limit); i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") != strconv.FormatInt(Register.Limit, 10) {
		t.Fatalf("unexpected limit header %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("unexpected remaining header %q", w.Header().Get("X-RateLimit-Remaining"))
	}
	secs, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || secs < 1 || secs > 60 {
		t.Fatalf("unexpected Retry-After %q", w.Header().Get("Retry-After"))
	}
}

func TestMiddleware_FailsOpen(t *testing.T) {
	mr, l := newLimiter(t)
	r := newRouter(l, Register)
	mr.Close()

	for i := 0; i < int(Register.Limit)+2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: expected pass-through, got %d", i, w.Code)
		}
	}
}

func TestRetrySeconds(t *testing.T) {
	cases := map[time.Duration]int{
		0:                       1,
		200 * time.Millisecond:  1,
		time.Second:             1,
		1500 * time.Millisecond: 2,
	}
	for in, want := range cases {
		if got := retrySeconds(in); got != want {
			t.Fatalf("retrySeconds(%v) = %d, want %d", in, got, want)
		}
	}
}
