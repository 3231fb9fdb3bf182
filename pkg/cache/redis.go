package cache

import (
	"context"
	"fmt"
	"time"

	"dummy-ticket/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const webhookEventPrefix = "webhook:event:"

func NewRedisClient(config utils.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
}

// EventStore remembers which webhook events are being or have been processed.
type EventStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventStore(client *redis.Client, ttl time.Duration) *EventStore {
	return &EventStore{client: client, ttl: ttl}
}

// Claim marks the event as taken. It returns false when another delivery
// claimed it first and the claim has not expired or been released.
func (s *EventStore) Claim(ctx context.Context, eventID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, webhookEventKey(eventID), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim webhook event %s: %w", eventID, err)
	}
	return ok, nil
}

// Release forgets the event so a redelivery is processed again.
func (s *EventStore) Release(ctx context.Context, eventID string) error {
	if err := s.client.Del(ctx, webhookEventKey(eventID)).Err(); err != nil {
		return fmt.Errorf("release webhook event %s: %w", eventID, err)
	}
	return nil
}

func (s *EventStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func webhookEventKey(eventID string) string {
	return webhookEventPrefix + eventID
}
