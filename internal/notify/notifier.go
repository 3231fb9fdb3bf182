package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/pkg/queue"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("booking has no whatsapp recipient")

type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// DirectNotifier sends the WhatsApp message inline.
type DirectNotifier struct {
	sender Sender
	log    *zap.Logger
}

func NewDirectNotifier(sender Sender, log *zap.Logger) *DirectNotifier {
	return &DirectNotifier{sender: sender, log: log.With(zap.String("notifier", "direct"))}
}

func (n *DirectNotifier) NotifyBookingPaid(ctx context.Context, booking *entity.Booking) error {
	return deliver(ctx, n.sender, NewBookingPaidEvent(booking, time.Now()), n.log)
}

// QueueNotifier publishes booking.paid events for the worker to deliver.
type QueueNotifier struct {
	publisher Publisher
	log       *zap.Logger
}

func NewQueueNotifier(publisher Publisher, log *zap.Logger) *QueueNotifier {
	return &QueueNotifier{publisher: publisher, log: log.With(zap.String("notifier", "queue"))}
}

func (n *QueueNotifier) NotifyBookingPaid(ctx context.Context, booking *entity.Booking) error {
	event := NewBookingPaidEvent(booking, time.Now())
	if event.WhatsApp == "" {
		return ErrNoRecipient
	}
	if err := n.publisher.Publish(ctx, event.BookingID, event); err != nil {
		return fmt.Errorf("publish %s for booking %s: %w", EventBookingPaid, event.BookingID, err)
	}
	n.log.Info("Booking notification queued", zap.String("booking_id", event.BookingID))
	return nil
}

// Handler decodes booking topic messages and delivers them through sender.
// Undecodable, unknown or recipient-less messages are skipped.
func Handler(sender Sender, log *zap.Logger) queue.Handler {
	log = log.With(zap.String("handler", "booking_notification"))
	return func(ctx context.Context, msg kafka.Message) error {
		var event BookingPaidEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("Skipping undecodable message", zap.Error(err), zap.String("key", string(msg.Key)))
			return nil
		}
		if event.Type != EventBookingPaid {
			return nil
		}
		if event.WhatsApp == "" {
			log.Warn("Skipping event without recipient", zap.String("booking_id", event.BookingID))
			return nil
		}
		return deliver(ctx, sender, event, log)
	}
}

func deliver(ctx context.Context, sender Sender, event BookingPaidEvent, log *zap.Logger) error {
	if event.WhatsApp == "" {
		return ErrNoRecipient
	}
	if err := sender.SendText(ctx, event.WhatsApp, event.Text()); err != nil {
		return fmt.Errorf("deliver booking %s: %w", event.BookingID, err)
	}
	log.Info("WhatsApp notification sent", zap.String("booking_id", event.BookingID))
	return nil
}
