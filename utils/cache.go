// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"auxin/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient backs the portal token/session store.
	SessionClient *redis.Client
	// AuthClient is the dedicated client for auth handshake state and token caching.
	AuthClient *redis.Client
)

// InitSessionCache initializes the Redis client backing the session store.
func InitSessionCache() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Session): %v", err)
	}
}

// GetSessionClient returns the session store client.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionCache()
	}
	return SessionClient
}

// InitAuthCache initializes the Redis client for auth handshake caching.
func InitAuthCache() {
	AuthClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for auth handshake caching.
func GetAuthCacheClient() *redis.Client {
	if AuthClient == nil {
		InitAuthCache()
	}
	return AuthClient
}
