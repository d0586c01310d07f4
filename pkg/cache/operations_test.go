package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-redis/redis/v8"
)

type memoryClient struct {
	hashes map[string]map[string]string
	err    error
}

func newMemoryClient() *memoryClient {
	return &memoryClient{hashes: make(map[string]map[string]string)}
}

func (m *memoryClient) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.err)
}

func (m *memoryClient) HGetAll(ctx context.Context, key string) *redis.StringStringMapCmd {
	out := make(map[string]string)
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return redis.NewStringStringMapResult(out, m.err)
}

func (m *memoryClient) HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	hash, ok := m.hashes[key]
	if !ok {
		hash = make(map[string]string)
		m.hashes[key] = hash
	}
	for i := 0; i+1 < len(values); i += 2 {
		hash[fmt.Sprint(values[i])] = fmt.Sprint(values[i+1])
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (m *memoryClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	var n int64
	for _, key := range keys {
		if _, ok := m.hashes[key]; ok {
			delete(m.hashes, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *memoryClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := m.hashes[key]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, m.err)
}

func TestReplaceHash(t *testing.T) {
	client := newMemoryClient()
	store := NewStore(client)
	ctx := context.Background()
	key := PostcodeTableKey("Australia")

	if err := store.ReplaceHash(ctx, key, map[string]string{"ASCOT_VALE": "3032", "DUNTROON": "2600"}); err != nil {
		t.Fatal(err)
	}
	if err := store.ReplaceHash(ctx, key, map[string]string{"STANMORE": "2048"}); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetHash(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got["STANMORE"] != "2048" {
		t.Errorf("GetHash(%q) == %v, expected only the second table", key, got)
	}

	exists, err := store.Exists(ctx, key)
	if err != nil || !exists {
		t.Errorf("Exists(%q) == (%v, %v)", key, exists, err)
	}

	if err := store.ReplaceHash(ctx, key, nil); err != nil {
		t.Fatal(err)
	}
	if exists, _ := store.Exists(ctx, key); exists {
		t.Errorf("empty replace left %q in place", key)
	}
}

func TestStoreErrors(t *testing.T) {
	client := newMemoryClient()
	client.err = errors.New("connection refused")
	store := NewStore(client)
	ctx := context.Background()

	_, err := store.GetHash(ctx, "k")
	if !IsRetryable(err) {
		t.Errorf("GetHash error %v should be retryable", err)
	}
	err = store.ReplaceHash(ctx, "k", map[string]string{"a": "b"})
	var cacheErr *CacheError
	if !errors.As(err, &cacheErr) || cacheErr.Operation != "delete" || IsRetryable(err) {
		t.Errorf("ReplaceHash error == %v", err)
	}
	if err := store.Ping(ctx); !errors.Is(err, client.err) {
		t.Errorf("Ping error == %v, expected it to wrap the client error", err)
	}
}

func TestPostcodeTableKey(t *testing.T) {
	cases := map[string]string{
		"australia":   "listings:postcodes:australia",
		" Australia ": "listings:postcodes:australia",
	}
	for in, expect := range cases {
		if got := PostcodeTableKey(in); got != expect {
			t.Errorf("PostcodeTableKey(%q) == %q, expected %q", in, got, expect)
		}
	}
}

func TestRedisConfigValidate(t *testing.T) {
	cases := []struct {
		cfg   RedisConfig
		valid bool
	}{
		{RedisConfig{Host: "localhost", Port: 6379}, true},
		{RedisConfig{Port: 6379}, false},
		{RedisConfig{Host: "localhost", Port: 70000}, false},
		{RedisConfig{Host: "localhost", Port: 6379, DB: -1}, false},
	}
	for _, c := range cases {
		if err := c.cfg.Validate(); (err == nil) != c.valid {
			t.Errorf("Validate(%+v) == %v, expected valid=%v", c.cfg, err, c.valid)
		}
	}
	if addr := (RedisConfig{Host: "redis", Port: 6380}).Addr(); addr != "redis:6380" {
		t.Errorf("Addr() == %q", addr)
	}
}
