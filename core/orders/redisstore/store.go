package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hypeclust/kiosk-core/core/orders"
	"github.com/hypeclust/kiosk-core/pkg/log"
	"github.com/redis/go-redis/v9"
)

const DefaultHistoryKey = "kiosk:order_history"

// Store persists the completed-order history as a JSON blob under a single
// key. The whole history is small; one order per customer session.
type Store struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultHistoryKey
	}
	return &Store{client: client, key: key}
}

func (s *Store) Load(ctx context.Context) ([]orders.CompletedOrder, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}

	var history []orders.CompletedOrder
	if err := json.Unmarshal(payload, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order history: %w", err)
	}

	log.Debug(log.Fields{"orders": len(history), "key": s.key}, "Loaded completed order history")
	return history, nil
}

func (s *Store) Save(ctx context.Context, history []orders.CompletedOrder) error {
	payload, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal order history: %w", err)
	}

	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save order history: %w", err)
	}
	return nil
}
