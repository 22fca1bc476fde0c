package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, max int64) *RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, time.Minute, max)
}

func TestRateLimiter_AllowsWithinQuota(t *testing.T) {
	l := newTestLimiter(t, 3)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(context.Background(), "10.0.0.1")
		if err != nil {
			t.Fatalf("Allow returned error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be within quota", i+1)
		}
	}
}

func TestRateLimiter_RejectsOverQuota(t *testing.T) {
	l := newTestLimiter(t, 2)

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(context.Background(), "10.0.0.2"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, err := l.Allow(context.Background(), "10.0.0.2")
	if err != nil {
		t.Fatalf("Allow returned error: %v", err)
	}
	if ok {
		t.Fatalf("third request should exceed quota")
	}
}

func TestRateLimiter_SourcesAreIndependent(t *testing.T) {
	l := newTestLimiter(t, 1)

	if ok, _ := l.Allow(context.Background(), "10.0.0.3"); !ok {
		t.Fatalf("first source should be allowed")
	}
	if ok, _ := l.Allow(context.Background(), "10.0.0.4"); !ok {
		t.Fatalf("second source should not share the first source's counter")
	}
}
