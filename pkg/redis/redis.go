package redis

import (
	"context"
	"time"

	"github.com/hypeclust/kiosk-core/pkg/log"
	"github.com/redis/go-redis/v9"
)

// New connects to Redis and verifies the connection with a ping. A failed
// ping is logged, not fatal; the kiosk keeps running with degraded presence
// and payment features while Redis is down.
func New(address, password string, db int) *redis.Client {
	log.Info(log.Fields{"address": address}, "Connecting to Redis...")

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(log.Fields{"error": err}, "Failed to connect to Redis")
	} else {
		log.Info(nil, "Successfully connected to Redis")
	}

	return client
}
