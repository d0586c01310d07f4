package repositories

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/models"
)

type stubLookup map[string]uint32

func (s stubLookup) FindPostcode(_ context.Context, suburb string, country models.Country) (uint32, error) {
	if postcode, ok := s[suburb]; ok {
		return postcode, nil
	}
	return 0, apperrors.NewLookupError(string(country), "suburb", suburb)
}

// fakeHashClient answers the hash commands from a map.
type fakeHashClient struct {
	hashes map[string]map[string]string
	err    error
}

func newFakeHashClient() *fakeHashClient {
	return &fakeHashClient{hashes: make(map[string]map[string]string)}
}

func (f *fakeHashClient) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.err)
}

func (f *fakeHashClient) HGetAll(_ context.Context, key string) *redis.StringStringMapCmd {
	out := make(map[string]string, len(f.hashes[key]))
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return redis.NewStringStringMapResult(out, f.err)
}

func (f *fakeHashClient) HSet(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	hash, ok := f.hashes[key]
	if !ok {
		hash = make(map[string]string)
		f.hashes[key] = hash
	}
	for i := 0; i+1 < len(values); i += 2 {
		hash[fmt.Sprint(values[i])] = fmt.Sprint(values[i+1])
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (f *fakeHashClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.hashes[key]; ok {
			delete(f.hashes, key)
			n++
		}
	}
	return redis.NewIntResult(n, f.err)
}

func (f *fakeHashClient) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.hashes[key]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, f.err)
}
