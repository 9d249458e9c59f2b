package httpkit

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"bounce_rentals_backend/platform/logger"
)

func TestMemoryWindowStore_FixedWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryWindowStore()
	store.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 8; i++ {
		allowed, err := store.Take(ctx, "1.2.3.4", 8, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, err := store.Take(ctx, "1.2.3.4", 8, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("9th request in the window should be denied")
	}

	// Other clients have their own budget.
	allowed, _ = store.Take(ctx, "5.6.7.8", 8, time.Minute)
	if !allowed {
		t.Fatalf("different key should not share the budget")
	}

	// A new window resets the counter.
	now = now.Add(61 * time.Second)
	allowed, _ = store.Take(ctx, "1.2.3.4", 8, time.Minute)
	if !allowed {
		t.Fatalf("request in a fresh window should be allowed")
	}
}

func TestRedisWindowStore_FixedWindow(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	store := NewRedisWindowStore(client)

	ctx := context.Background()
	for i := 0; i < 8; i++ {
		allowed, err := store.Take(ctx, "1.2.3.4", 8, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, err := store.Take(ctx, "1.2.3.4", 8, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("9th request in the window should be denied")
	}

	srv.FastForward(61 * time.Second)
	allowed, err = store.Take(ctx, "1.2.3.4", 8, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatalf("request after expiry should be allowed")
	}
}

type failingStore struct{}

func (failingStore) Take(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	return false, errors.New("store unavailable")
}

func TestFixedWindowLimiter_FailsOpen(t *testing.T) {
	limiter := NewFixedWindowLimiter(failingStore{}, 8, time.Minute, logger.New("test"))
	if !limiter.Allow(context.Background(), "1.2.3.4") {
		t.Fatalf("store failure should not block requests")
	}
}

func TestClientIdentifier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		forwarded string
		realIP    string
		want      string
	}{
		{"1.2.3.4, 10.0.0.1", "9.9.9.9", "1.2.3.4"},
		{"", "9.9.9.9", "9.9.9.9"},
		{"", "", "unknown"},
	}

	for i, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", "/api/quote", nil)
		if tc.forwarded != "" {
			c.Request.Header.Set("X-Forwarded-For", tc.forwarded)
		}
		if tc.realIP != "" {
			c.Request.Header.Set("X-Real-IP", tc.realIP)
		}
		if got := ClientIdentifier(c); got != tc.want {
			t.Fatalf("case %d: expected %q, got %q", i, tc.want, got)
		}
	}
}
