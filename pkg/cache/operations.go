package cache

import (
	"context"
	"time"

	"homeinsight-listings/pkg/logger"
)

type Store struct {
	client HashClient
}

func NewStore(client HashClient) *Store {
	return &Store{client: client}
}

// GetHash returns every field of the hash at key. A missing key yields an
// empty map, matching HGETALL.
func (s *Store) GetHash(ctx context.Context, key string) (map[string]string, error) {
	start := time.Now()
	fields, err := s.client.HGetAll(ctx, key).Result()
	observe("hgetall", start, err)
	if err != nil {
		logger.L().Errorf("failed to read hash %s: %v", key, err)
		return nil, NewCacheError("hgetall", key, err, true)
	}
	return fields, nil
}

// ReplaceHash drops the hash at key and writes fields in its place.
func (s *Store) ReplaceHash(ctx context.Context, key string, fields map[string]string) error {
	if err := s.Delete(ctx, key); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(fields)*2)
	for field, value := range fields {
		values = append(values, field, value)
	}

	start := time.Now()
	err := s.client.HSet(ctx, key, values...).Err()
	observe("hset", start, err)
	if err != nil {
		logger.L().Errorf("failed to write hash %s: %v", key, err)
		return NewCacheError("hset", key, err, false)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.client.Del(ctx, key).Err()
	observe("delete", start, err)
	if err != nil {
		logger.L().Errorf("failed to delete key %s: %v", key, err)
		return NewCacheError("delete", key, err, false)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	count, err := s.client.Exists(ctx, key).Result()
	observe("exists", start, err)
	if err != nil {
		logger.L().Errorf("failed to check existence of key %s: %v", key, err)
		return false, NewCacheError("exists", key, err, true)
	}
	return count > 0, nil
}

func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.client.Ping(ctx).Err()
	observe("ping", start, err)
	if err != nil {
		return NewCacheError("ping", "", err, true)
	}
	return nil
}
