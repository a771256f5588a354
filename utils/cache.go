// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"bookly/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient backs the pending-booking session store.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client for booking sessions. It
// returns an error instead of exiting so the caller can fall back to the
// in-memory store when Redis is not reachable.
func InitSessionCache() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	SessionCacheClient = client
	return client, nil
}

// GetSessionCacheClient returns the session cache client, initializing it on
// first use. Returns nil when Redis is unavailable.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		if _, err := InitSessionCache(); err != nil {
			return nil
		}
	}
	return SessionCacheClient
}
