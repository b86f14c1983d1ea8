package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis implements the commander surface with in-memory maps. TTLs are
// recorded, not enforced.
type fakeRedis struct {
	values   map[string]string
	counters map[string]int64
	ttls     map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values:   map[string]string{},
		counters: map[string]int64{},
		ttls:     map[string]time.Duration{},
	}
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.values[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := f.values[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counters[key]++
	return redis.NewIntResult(f.counters[key], nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.values, key)
		delete(f.ttls, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	client := &Client{cmd: fake}

	type step struct {
		wantAllowed bool
		wantCount   int64
	}
	steps := []step{
		{wantAllowed: true, wantCount: 1},
		{wantAllowed: true, wantCount: 2},
		{wantAllowed: false, wantCount: 3},
	}
	for i, s := range steps {
		allowed, count, err := client.FixedWindowAllow(ctx, "login", 2, time.Second)
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
		if allowed != s.wantAllowed || count != s.wantCount {
			t.Fatalf("attempt %d: got allowed=%v count=%d, want allowed=%v count=%d",
				i+1, allowed, count, s.wantAllowed, s.wantCount)
		}
	}

	// only the first increment of a window sets the expiry
	if ttl, ok := fake.ttls[client.RateLimitKey("login")]; !ok || ttl != time.Second {
		t.Fatalf("window key ttl = %v (set=%v), want 1s set once", ttl, ok)
	}
}

func TestSessionValueLifecycle(t *testing.T) {
	ctx := context.Background()
	client := &Client{cmd: newFakeRedis()}

	key := client.AccessSessionKey("jti-1")
	if err := client.Set(ctx, key, "token-value", 10*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, err := client.Get(ctx, key); err != nil || got != "token-value" {
		t.Fatalf("get = %q, %v", got, err)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, key); err != redis.Nil {
		t.Fatalf("want redis.Nil after delete, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	cases := []struct{ got, want string }{
		{client.RateLimitKey("scope"), "sr:rate_limit:scope"},
		{client.AccessSessionKey("jti"), "sr:session:access:jti"},
		{client.AccessSessionKey(" jti "), "sr:session:access:jti"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("key = %q, want %q", c.got, c.want)
		}
	}
}
