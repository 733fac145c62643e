// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"vijayfix/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the redis client backing the diagnosis cache.
var CacheClient *redis.Client

// InitCache connects the diagnosis cache client and verifies it with a ping.
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return fmt.Errorf("connect to redis (cache) at %s: %w", config.AppConfig.RedisAddr, err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the cache client, or nil when InitCache was never
// called or failed.
func GetCacheClient() *redis.Client {
	return CacheClient
}
