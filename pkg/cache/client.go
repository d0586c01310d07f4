package cache

import (
	"context"
	"fmt"
	"time"

	"homeinsight-listings/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// Connect opens a Redis client and pings it before handing it back.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Redis config: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := NewStore(client).Ping(ctx); err != nil {
		logger.L().Errorf("failed to connect to Redis at %s: %v", cfg.Addr(), err)
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.L().Printf("Redis connected at %s", cfg.Addr())
	return client, nil
}

// Close shuts the client down, logging rather than returning the error.
func Close(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.L().Errorf("error closing Redis: %v", err)
		return
	}
	logger.L().Println("Redis connection closed")
}
