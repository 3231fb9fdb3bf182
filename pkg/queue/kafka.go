package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		log: log.With(zap.String("component", "kafka_producer"), zap.String("topic", topic)),
	}
}

// Publish writes payload as JSON. Messages with the same key land on the same partition.
func (p *Producer) Publish(ctx context.Context, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message %s: %w", key, err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data, Time: time.Now()}); err != nil {
		return fmt.Errorf("write message %s: %w", key, err)
	}

	p.log.Debug("Message published", zap.String("key", key))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Handler processes one message. Returning an error triggers a retry.
type Handler func(ctx context.Context, msg kafka.Message) error

type Consumer struct {
	reader      *kafka.Reader
	maxAttempts int
	backoff     time.Duration
	log         *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
				log.Sugar().Errorf(msg, args...)
			}),
		}),
		maxAttempts: 3,
		backoff:     time.Second,
		log:         log.With(zap.String("component", "kafka_consumer"), zap.String("topic", topic)),
	}
}

// Consume blocks until ctx is cancelled. A message whose handler keeps failing
// is logged and committed so it does not block the partition.
func (c *Consumer) Consume(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.handleWithRetry(ctx, handle, msg); err != nil {
			c.log.Error("Dropping message after retries",
				zap.Error(err),
				zap.String("key", string(msg.Key)),
				zap.Int64("offset", msg.Offset),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

func (c *Consumer) handleWithRetry(ctx context.Context, handle Handler, msg kafka.Message) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if lastErr = handle(ctx, msg); lastErr == nil {
			return nil
		}
		c.log.Warn("Message handler failed", zap.Error(lastErr), zap.Int("attempt", attempt))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}
	return lastErr
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
