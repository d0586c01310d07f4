// Package cache provides the Redis-backed key/value layer for homeinsight-listings.
package cache

import (
	"fmt"

	"homeinsight-listings/pkg/config"
)

// RedisConfig holds the connection settings for a Redis instance.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisConfigFrom lifts the redis section out of the application config.
func RedisConfigFrom(cfg *config.Config) RedisConfig {
	return RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c RedisConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535")
	}
	if c.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	return nil
}
