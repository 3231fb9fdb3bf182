package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dummy-ticket/pkg/utils"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

// StripeGateway talks to Stripe Checkout. The zero backends value uses the
// live Stripe API; tests pass backends pointing at a local server.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
	log           *zap.Logger
}

func NewStripeGateway(config utils.StripeConfig, backends *stripe.Backends, log *zap.Logger) *StripeGateway {
	return &StripeGateway{
		api:           client.New(config.SecretKey, backends),
		webhookSecret: config.WebhookSecret,
		successURL:    config.SuccessURL,
		cancelURL:     config.CancelURL,
		log:           log.With(zap.String("gateway", "stripe")),
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(req.BookingID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(utils.ToMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if req.PaymentMethod != "" {
		params.PaymentMethodTypes = stripe.StringSlice([]string{req.PaymentMethod})
	}
	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		g.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("create checkout session for booking %s: %w", req.BookingID, err)
	}

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// GetSession fetches a checkout session with its payment intent expanded.
func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent")
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		g.log.Warn("Failed to retrieve checkout session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("retrieve checkout session %s: %w", sessionID, err)
	}

	return toSession(session), nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &Event{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil || !strings.HasPrefix(out.Type, "checkout.session.") {
		return out, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("decode checkout session of event %s: %w", event.ID, err)
	}
	out.Session = toSession(&session)

	return out, nil
}

func toSession(s *stripe.CheckoutSession) *Session {
	out := &Session{
		ID:                 s.ID,
		PaymentStatus:      string(s.PaymentStatus),
		AmountTotal:        s.AmountTotal,
		Currency:           string(s.Currency),
		PaymentMethodTypes: s.PaymentMethodTypes,
		Metadata:           s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	if out.Metadata == nil {
		out.Metadata = map[string]string{}
	}
	return out
}

// IsProviderError reports whether err came back from the Stripe API.
func IsProviderError(err error) bool {
	var stripeErr *stripe.Error
	return errors.As(err, &stripeErr)
}
