package cache

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// HashClient is the subset of *redis.Client the store needs.
type HashClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	HGetAll(ctx context.Context, key string) *redis.StringStringMapCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// HashOperations is what repositories depend on.
type HashOperations interface {
	GetHash(ctx context.Context, key string) (map[string]string, error)
	ReplaceHash(ctx context.Context, key string, fields map[string]string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
