package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newStoreFixture(t *testing.T) (*RateLimitStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRateLimitStore(client, SlidingWindowConfig{
		KeyPrefix: "test:ratelimit",
		TTL:       time.Minute,
	}), mr
}

func TestRateLimitStoreCountsAttemptsInWindow(t *testing.T) {
	store, _ := newStoreFixture(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		if err := store.RecordAttempt(ctx, "client-a", now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("RecordAttempt: %v", err)
		}
	}

	count, err := store.CountAttempts(ctx, "client-a", time.Minute, now.Add(3*time.Second))
	if err != nil {
		t.Fatalf("CountAttempts: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	// A different identifier has its own window.
	count, err = store.CountAttempts(ctx, "client-b", time.Minute, now)
	if err != nil {
		t.Fatalf("CountAttempts: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestRateLimitStoreTrimWindow(t *testing.T) {
	store, _ := newStoreFixture(t)
	ctx := context.Background()
	now := time.Now()

	if err := store.RecordAttempt(ctx, "client-a", now.Add(-2*time.Minute)); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	if err := store.RecordAttempt(ctx, "client-a", now); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}

	if err := store.TrimWindow(ctx, "client-a", time.Minute, now); err != nil {
		t.Fatalf("TrimWindow: %v", err)
	}

	count, err := store.CountAttempts(ctx, "client-a", time.Hour, now)
	if err != nil {
		t.Fatalf("CountAttempts: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after trim = %d, want 1", count)
	}
}

func TestRateLimitStoreOldestAttempt(t *testing.T) {
	store, _ := newStoreFixture(t)
	ctx := context.Background()
	now := time.Now()
	first := now.Add(-30 * time.Second)

	if err := store.RecordAttempt(ctx, "client-a", first); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	if err := store.RecordAttempt(ctx, "client-a", now); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}

	oldest, found, err := store.OldestAttempt(ctx, "client-a", time.Minute, now)
	if err != nil {
		t.Fatalf("OldestAttempt: %v", err)
	}
	if !found {
		t.Fatal("expected an attempt inside the window")
	}
	if !oldest.Equal(first) {
		t.Fatalf("oldest = %v, want %v", oldest, first)
	}

	_, found, err = store.OldestAttempt(ctx, "client-empty", time.Minute, now)
	if err != nil {
		t.Fatalf("OldestAttempt: %v", err)
	}
	if found {
		t.Fatal("expected no attempt for an untouched identifier")
	}
}

func TestRateLimitStoreAppliesTTL(t *testing.T) {
	store, mr := newStoreFixture(t)
	ctx := context.Background()
	now := time.Now()

	if err := store.RecordAttempt(ctx, "client-a", now); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	count, err := store.CountAttempts(ctx, "client-a", time.Hour, now.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("CountAttempts: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after expiry = %d, want 0", count)
	}
}
