// Package payment holds the provider-agnostic view of a hosted checkout session
// and the Stripe implementation behind it.
package payment

import "errors"

const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"

	EventCheckoutCompleted     = "checkout.session.completed"
	EventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
)

// Metadata keys written at checkout and read back during reconciliation.
const (
	MetaBookingID     = "booking_id"
	MetaUserID        = "user_id"
	MetaPlanID        = "plan_id"
	MetaAmount        = "amount"
	MetaCurrency      = "currency"
	MetaPaymentMethod = "payment_method"
	MetaPassenger     = "meta_passenger"
	MetaTravel        = "meta_travel"
	MetaDelivery      = "meta_delivery"
	MetaBilling       = "meta_billing"

	GuestUserID = "guest"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMetadataTooLong  = errors.New("metadata value exceeds provider limit")
)

// Session is a checkout session as seen by reconciliation.
type Session struct {
	ID                 string
	PaymentStatus      string
	AmountTotal        int64 // minor units
	Currency           string
	PaymentIntentID    string
	PaymentMethodTypes []string
	Metadata           map[string]string
}

func (s *Session) IsPaid() bool {
	return s != nil && s.PaymentStatus == PaymentStatusPaid
}

// Event is a verified webhook notification. Session is nil for event types
// that do not carry a checkout session.
type Event struct {
	ID      string
	Type    string
	Session *Session
}

// CheckoutRequest describes a hosted checkout to open for one booking.
type CheckoutRequest struct {
	BookingID     string
	ProductName   string
	Amount        float64
	Currency      string
	CustomerEmail string
	PaymentMethod string
	Metadata      map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}
