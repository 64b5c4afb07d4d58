// File: utils/redis.go
package utils

import (
	"context"
	"log"
	"time"

	"slotify/config"

	"github.com/go-redis/redis/v8"
)

// EventRedisClient is the client for the event-queue Redis instance. The
// publisher enqueues through asynq's own connection; this client exists for
// health checks against the same instance.
var EventRedisClient *redis.Client

// InitEventRedis initializes the Redis client for the event queue DB.
func InitEventRedis() {
	EventRedisClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := EventRedisClient.Ping(ctx).Result(); err != nil {
		log.Printf("Redis (events) not reachable at startup: %v", err)
	}
}

// GetEventRedisClient returns the event-queue Redis client.
func GetEventRedisClient() *redis.Client {
	if EventRedisClient == nil {
		InitEventRedis()
	}
	return EventRedisClient
}
