package changelog

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheServesFreshValueWithoutRefetch(t *testing.T) {
	calls := 0
	cache := NewCache(10*time.Minute, func(context.Context) ([]Commit, error) {
		calls++
		return []Commit{{Hash: "abc1234"}}, nil
	})
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		value, err := cache.Get(context.Background())
		if err != nil {
			t.Fatalf("get %d failed: %v", i, err)
		}
		if len(value) != 1 || value[0].Hash != "abc1234" {
			t.Fatalf("get %d: unexpected value %+v", i, value)
		}
		now = now.Add(time.Minute)
	}
	if calls != 1 {
		t.Errorf("expected a single upstream fetch, got %d", calls)
	}
}

func TestCacheRefreshesAfterTTL(t *testing.T) {
	calls := 0
	cache := NewCache(10*time.Minute, func(context.Context) ([]Commit, error) {
		calls++
		return []Commit{{Hash: "call", Message: string(rune('0' + calls))}}, nil
	})
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	now = now.Add(11 * time.Minute)
	value, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected refetch after TTL, got %d calls", calls)
	}
	if value[0].Message != "2" {
		t.Errorf("expected refreshed value, got %+v", value[0])
	}
}

func TestCacheServesStaleOnError(t *testing.T) {
	calls := 0
	cache := NewCache(10*time.Minute, func(context.Context) ([]Commit, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("rate limited")
		}
		return []Commit{{Hash: "abc1234"}}, nil
	})
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	now = now.Add(time.Hour)
	value, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if len(value) != 1 || value[0].Hash != "abc1234" {
		t.Errorf("expected stale value, got %+v", value)
	}
}

func TestCacheErrorWithoutFallback(t *testing.T) {
	wantErr := errors.New("boom")
	cache := NewCache(time.Minute, func(context.Context) ([]Commit, error) {
		return nil, wantErr
	})

	if _, err := cache.Get(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error to surface, got %v", err)
	}
}
