// Package notify delivers booking notifications to customers over WhatsApp,
// either inline or through a Kafka topic drained by the worker.
package notify

import (
	"fmt"
	"strings"
	"time"

	"dummy-ticket/internal/data/entity"
)

const EventBookingPaid = "booking.paid"

// BookingPaidEvent is the message published on the booking topic.
type BookingPaidEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	PassengerName string    `json:"passenger_name"`
	WhatsApp      string    `json:"whatsapp_number"`
	Route         string    `json:"route,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingPaidEvent(booking *entity.Booking, now time.Time) BookingPaidEvent {
	d := booking.PassengerDetails
	event := BookingPaidEvent{
		Type:          EventBookingPaid,
		BookingID:     booking.ID.String(),
		PassengerName: d.FullName(),
		Amount:        booking.Amount,
		Currency:      booking.Currency,
		OccurredAt:    now.UTC(),
	}
	if d.WhatsAppNumber != nil {
		event.WhatsApp = *d.WhatsAppNumber
	}
	if d.DepartureCity != nil && d.ArrivalCity != nil {
		event.Route = *d.DepartureCity + " - " + *d.ArrivalCity
	}
	return event
}

// Text is the WhatsApp message body.
func (e BookingPaidEvent) Text() string {
	var b strings.Builder
	name := e.PassengerName
	if name == "" {
		name = "traveller"
	}
	fmt.Fprintf(&b, "Hi %s, your payment of %.2f %s was received.\n", name, e.Amount, e.Currency)
	if e.Route != "" {
		fmt.Fprintf(&b, "Route: %s\n", e.Route)
	}
	fmt.Fprintf(&b, "Booking reference: %s\n", strings.ToUpper(shortRef(e.BookingID)))
	b.WriteString("Your reservation document will be sent here shortly.")
	return b.String()
}

func shortRef(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
