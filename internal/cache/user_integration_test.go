//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitlog/fitlog/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}

func TestIntegrationUserCache_SetAndGet(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	user := testutil.NewTestUser(t, "alice")

	if err := c.SetUser(ctx, user, time.Minute); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	cached, err := c.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}

	if cached.Username != "alice" {
		t.Errorf("Username = %q, want alice", cached.Username)
	}

	restored := cached.ToUser(user.ID)
	if restored.CreatedAt.Unix() != user.CreatedAt.Unix() {
		t.Errorf("CreatedAt = %v, want %v", restored.CreatedAt, user.CreatedAt)
	}
}

func TestIntegrationUserCache_Miss(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	_, err := c.GetUser(ctx, "missing-id")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestIntegrationUserCache_NegativeCache(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	id := testutil.UniqueID("ghost")

	negative, err := c.IsNegativelyCached(ctx, id)
	if err != nil {
		t.Fatalf("IsNegativelyCached failed: %v", err)
	}
	if negative {
		t.Fatal("expected no negative entry yet")
	}

	if err := c.SetNegativeUser(ctx, id); err != nil {
		t.Fatalf("SetNegativeUser failed: %v", err)
	}

	negative, err = c.IsNegativelyCached(ctx, id)
	if err != nil {
		t.Fatalf("IsNegativelyCached failed: %v", err)
	}
	if !negative {
		t.Error("expected negative entry")
	}
}

func TestIntegrationUserCache_SetUserClearsNegative(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	user := testutil.NewTestUser(t, "bob")

	if err := c.SetNegativeUser(ctx, user.ID); err != nil {
		t.Fatalf("SetNegativeUser failed: %v", err)
	}

	if err := c.SetUser(ctx, user, time.Minute); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	negative, err := c.IsNegativelyCached(ctx, user.ID)
	if err != nil {
		t.Fatalf("IsNegativelyCached failed: %v", err)
	}
	if negative {
		t.Error("SetUser should clear the negative entry")
	}
}

func TestIntegrationRateLimit_TokenBucket(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	ip := "203.0.113.7"

	// Burst of 2: the first two requests pass, the third is rejected.
	for i := 0; i < 2; i++ {
		result, err := c.CheckIPRateLimit(ctx, ip, 1, 2)
		if err != nil {
			t.Fatalf("CheckIPRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	result, err := c.CheckIPRateLimit(ctx, ip, 1, 2)
	if err != nil {
		t.Fatalf("CheckIPRateLimit failed: %v", err)
	}
	if result.Allowed {
		t.Error("request over burst should be rejected")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter, got %v", result.RetryAfter)
	}
}
