package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusPaid       BookingStatus = "paid"
	BookingStatusProcessing BookingStatus = "processing"
	BookingStatusDelivered  BookingStatus = "delivered"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusRefunded   BookingStatus = "refunded"
)

// IsFulfillable reports whether a reservation document may be issued for the booking.
func (s BookingStatus) IsFulfillable() bool {
	switch s {
	case BookingStatusPaid, BookingStatusProcessing, BookingStatusDelivered:
		return true
	}
	return false
}

const (
	DeliveryMethodEmail    = "email"
	DeliveryMethodWhatsApp = "whatsapp"
)

// Booking is one paid dummy-ticket order. ID is generated by the client before
// checkout; StripeSessionID is unique across the table.
type Booking struct {
	BaseNoDelete
	UserID           *uuid.UUID       `db:"user_id"`
	PlanID           string           `db:"plan_id"`
	Amount           float64          `db:"amount"`
	Currency         string           `db:"currency"`
	Status           BookingStatus    `db:"status"`
	StripeSessionID  string           `db:"stripe_session_id"`
	PaymentIntentID  *string          `db:"payment_intent_id"`
	PaymentMethod    string           `db:"payment_method"`
	PassengerDetails PassengerDetails `db:"passenger_details"`
}

// OwnedBy reports whether userID placed the booking. Guest bookings have no owner.
func (b *Booking) OwnedBy(userID uuid.UUID) bool {
	return b.UserID != nil && *b.UserID == userID
}

// WantsWhatsApp reports whether the customer asked for delivery over WhatsApp.
func (b *Booking) WantsWhatsApp() bool {
	d := b.PassengerDetails
	return d.DeliveryMethod != nil && *d.DeliveryMethod == DeliveryMethodWhatsApp &&
		d.WhatsAppNumber != nil && *d.WhatsAppNumber != ""
}

// PassengerDetails is stored as a single JSONB document. Every field is nullable:
// a metadata fragment that could not be decoded leaves its fields nil.
type PassengerDetails struct {
	// passenger
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	PassportNumber *string `json:"passport_number"`
	DateOfBirth    *string `json:"date_of_birth"`
	Gender         *string `json:"gender"`
	Nationality    *string `json:"nationality"`

	// travel
	DepartureCity *string `json:"departure_city"`
	ArrivalCity   *string `json:"arrival_city"`
	DepartureDate *string `json:"departure_date"`
	ReturnDate    *string `json:"return_date"`
	TravelClass   *string `json:"travel_class"`
	TripType      *string `json:"trip_type"`

	// delivery
	DeliveryMethod *string `json:"delivery_method"`
	DeliveryEmail  *string `json:"delivery_email"`
	WhatsAppNumber *string `json:"whatsapp_number"`

	// billing
	BillingName    *string `json:"billing_name"`
	BillingAddress *string `json:"billing_address"`
	BillingCity    *string `json:"billing_city"`
	BillingZip     *string `json:"billing_zip"`
	BillingCountry *string `json:"billing_country"`
}

// FullName joins first and last name, skipping missing parts.
func (d PassengerDetails) FullName() string {
	name := ""
	if d.FirstName != nil {
		name = *d.FirstName
	}
	if d.LastName != nil && *d.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *d.LastName
	}
	return name
}
