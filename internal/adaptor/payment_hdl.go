package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dummy-ticket/internal/dto/request"
	"dummy-ticket/internal/usecase"
	"dummy-ticket/pkg/utils"

	"go.uber.org/zap"
)

// maxWebhookBody matches the payload ceiling Stripe documents for events.
const maxWebhookBody = 64 << 10

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateCheckout handles POST /api/checkout (guest or authenticated)
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	checkout, err := h.service.CreateCheckout(r.Context(), principalFromRequest(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create checkout")
		return
	}

	utils.ResponseCreated(w, "Checkout session created", checkout)
}

// VerifyPayment handles POST /api/payments/verify. It answers 201 when this
// call created the booking and 200 when it already existed.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.VerifyPayment(r.Context(), principalFromRequest(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify payment")
		return
	}

	if result.Created {
		utils.ResponseCreated(w, "Booking confirmed", result)
		return
	}
	utils.ResponseSuccess(w, "Booking already confirmed", result)
}

// Webhook handles POST /api/webhooks/stripe. Any non-2xx answer makes Stripe
// redeliver the event later.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseJSON(w, http.StatusRequestEntityTooLarge, false, "Payload too large", nil, nil)
			return
		}
		utils.ResponseBadRequest(w, "Unable to read body", nil)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		utils.ResponseBadRequest(w, "Missing Stripe-Signature header", nil)
		return
	}

	result, err := h.service.HandleWebhook(r.Context(), payload, signature)
	if err != nil {
		handleServiceError(w, h.log, err, "handle webhook")
		return
	}

	utils.ResponseSuccess(w, "received", result)
}
