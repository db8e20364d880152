// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"foodsavvy/config"

	"github.com/go-redis/redis/v8"
)

// HoldCacheClient is the dedicated client for checkout reservation holds.
var HoldCacheClient *redis.Client

// InitHoldCache initializes the Redis client backing checkout holds.
func InitHoldCache() {
	HoldCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisHoldDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := HoldCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Holds): %v", err)
	}
}

// GetHoldCacheClient returns the Redis client for checkout holds.
func GetHoldCacheClient() *redis.Client {
	if HoldCacheClient == nil {
		InitHoldCache()
	}
	return HoldCacheClient
}
