package response

import (
	"time"

	"dummy-ticket/internal/data/entity"
)

type BookingResponse struct {
	ID               string                  `json:"id"`
	UserID           *string                 `json:"user_id"`
	PlanID           string                  `json:"plan_id"`
	Amount           float64                 `json:"amount"`
	Currency         string                  `json:"currency"`
	Status           entity.BookingStatus    `json:"status"`
	StripeSessionID  string                  `json:"stripe_session_id"`
	PaymentIntentID  *string                 `json:"payment_intent_id,omitempty"`
	PaymentMethod    string                  `json:"payment_method"`
	PassengerDetails entity.PassengerDetails `json:"passenger_details"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// VerifyPaymentResponse tells the caller whether this call created the booking.
type VerifyPaymentResponse struct {
	Created bool            `json:"created"`
	Booking BookingResponse `json:"booking"`
}

type CheckoutResponse struct {
	BookingID   string `json:"booking_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// WebhookResponse is the acknowledgement body returned to the payment provider.
type WebhookResponse struct {
	Received bool   `json:"received"`
	Result   string `json:"result"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:               booking.ID.String(),
		PlanID:           booking.PlanID,
		Amount:           booking.Amount,
		Currency:         booking.Currency,
		Status:           booking.Status,
		StripeSessionID:  booking.StripeSessionID,
		PaymentIntentID:  booking.PaymentIntentID,
		PaymentMethod:    booking.PaymentMethod,
		PassengerDetails: booking.PassengerDetails,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
	}

	if booking.UserID != nil {
		userID := booking.UserID.String()
		resp.UserID = &userID
	}

	return resp
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}
