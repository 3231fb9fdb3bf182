package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/internal/dto/request"
	"dummy-ticket/internal/dto/response"
	"dummy-ticket/internal/payment"
	"dummy-ticket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway is the hosted-checkout provider.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*payment.Session, error)
	ParseWebhook(payload []byte, signature string) (*payment.Event, error)
}

// EventDeduper remembers webhook event ids already being processed.
type EventDeduper interface {
	// Claim returns false when the event was claimed before.
	Claim(ctx context.Context, eventID string) (bool, error)
	Release(ctx context.Context, eventID string) error
}

// Notifier delivers the paid-booking message to the customer.
type Notifier interface {
	NotifyBookingPaid(ctx context.Context, booking *entity.Booking) error
}

const (
	WebhookResultCreated   = "created"
	WebhookResultExisted   = "already_existed"
	WebhookResultDuplicate = "duplicate"
	WebhookResultIgnored   = "ignored"
)

type PaymentService interface {
	CreateCheckout(ctx context.Context, principal *entity.SessionPrincipal, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	VerifyPayment(ctx context.Context, principal *entity.SessionPrincipal, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*response.WebhookResponse, error)
}

type paymentService struct {
	gateway    PaymentGateway
	reconciler ReconcileService
	plans      repository.PlanRepository
	deduper    EventDeduper
	notifier   Notifier
	config     *utils.Config
	log        *zap.Logger
}

func NewPaymentService(
	gateway PaymentGateway,
	reconciler ReconcileService,
	plans repository.PlanRepository,
	deduper EventDeduper,
	notifier Notifier,
	config *utils.Config,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		gateway:    gateway,
		reconciler: reconciler,
		plans:      plans,
		deduper:    deduper,
		notifier:   notifier,
		config:     config,
		log:        log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, principal *entity.SessionPrincipal, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, newValidationError(map[string]string{"PlanID": "Must be a valid UUID"})
	}

	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("load plan %s: %w", req.PlanID, err)
	}
	if plan == nil || !plan.IsActive {
		return nil, fmt.Errorf("plan %s: %w", req.PlanID, ErrNotFound)
	}

	bookingID := uuid.New()
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}
	currency := plan.Currency
	if currency == "" {
		currency = s.config.Payment.Currency
	}

	userRef := payment.GuestUserID
	if principal != nil {
		userRef = principal.UserID.String()
	}

	metadata := map[string]string{
		payment.MetaBookingID:     bookingID.String(),
		payment.MetaUserID:        userRef,
		payment.MetaPlanID:        plan.ID.String(),
		payment.MetaAmount:        strconv.FormatFloat(utils.RoundMoney(plan.Price), 'f', 2, 64),
		payment.MetaCurrency:      currency,
		payment.MetaPaymentMethod: paymentMethod,
	}
	if err := checkoutFragments(req).Encode(metadata); err != nil {
		if errors.Is(err, payment.ErrMetadataTooLong) {
			return nil, newValidationError(map[string]string{"_": err.Error()})
		}
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		BookingID:     bookingID.String(),
		ProductName:   plan.Name,
		Amount:        plan.Price,
		Currency:      currency,
		CustomerEmail: req.Passenger.Email,
		PaymentMethod: paymentMethod,
		Metadata:      metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.log.Info("Checkout session created",
		zap.String("booking_id", bookingID.String()),
		zap.String("session_id", session.ID),
		zap.String("plan_id", plan.ID.String()),
	)

	return &response.CheckoutResponse{
		BookingID:   bookingID.String(),
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, principal *entity.SessionPrincipal, req *request.VerifyPaymentRequest) (*response.VerifyPaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	session, err := s.gateway.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !session.IsPaid() {
		s.log.Info("Verify called before payment completed",
			zap.String("session_id", session.ID),
			zap.String("payment_status", session.PaymentStatus),
		)
		return nil, ErrPaymentNotComplete
	}

	result, err := s.reconciler.Reconcile(ctx, session)
	if err != nil {
		return nil, err
	}

	if principal != nil && result.Booking.UserID != nil &&
		!result.Booking.OwnedBy(principal.UserID) && principal.Role != entity.RoleAdmin {
		s.log.Warn("Booking verified by a different user",
			zap.String("booking_id", result.Booking.ID.String()),
			zap.String("user_id", principal.UserID.String()),
		)
		return nil, ErrForbidden
	}

	return &response.VerifyPaymentResponse{
		Created: result.Outcome == OutcomeCreated,
		Booking: response.BookingToResponse(result.Booking),
	}, nil
}

// HandleWebhook processes one signed provider event. A returned error means the
// provider should redeliver; the event claim is released first.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*response.WebhookResponse, error) {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		s.log.Warn("Rejected webhook", zap.Error(err))
		if errors.Is(err, payment.ErrInvalidSignature) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	log := s.log.With(zap.String("event_id", event.ID), zap.String("event_type", event.Type))

	if !handledEvent(event) {
		log.Debug("Ignoring webhook event")
		return &response.WebhookResponse{Received: true, Result: WebhookResultIgnored}, nil
	}

	claimed := false
	if s.deduper != nil {
		ok, err := s.deduper.Claim(ctx, event.ID)
		switch {
		case err != nil:
			// Reconciliation stays idempotent without the claim.
			log.Warn("Webhook dedup unavailable", zap.Error(err))
		case !ok:
			log.Info("Duplicate webhook delivery")
			return &response.WebhookResponse{Received: true, Result: WebhookResultDuplicate}, nil
		default:
			claimed = true
		}
	}

	result, err := s.reconciler.Reconcile(ctx, event.Session)
	if err != nil {
		if claimed {
			if relErr := s.deduper.Release(context.WithoutCancel(ctx), event.ID); relErr != nil {
				log.Error("Failed to release webhook claim", zap.Error(relErr))
			}
		}
		return nil, err
	}

	if s.notifier != nil && result.Booking.WantsWhatsApp() {
		if err := s.notifier.NotifyBookingPaid(ctx, result.Booking); err != nil {
			log.Error("Failed to dispatch booking notification",
				zap.Error(err),
				zap.String("booking_id", result.Booking.ID.String()),
			)
		}
	}

	res := WebhookResultExisted
	if result.Outcome == OutcomeCreated {
		res = WebhookResultCreated
	}
	return &response.WebhookResponse{Received: true, Result: res}, nil
}

func handledEvent(event *payment.Event) bool {
	if event.Session == nil {
		return false
	}
	switch event.Type {
	case payment.EventCheckoutCompleted, payment.EventAsyncPaymentSucceeded:
		return event.Session.IsPaid()
	}
	return false
}

func checkoutFragments(req *request.CheckoutRequest) payment.Fragments {
	p, t, d, b := req.Passenger, req.Travel, req.Delivery, req.Billing
	return payment.Fragments{
		Passenger: &payment.PassengerFragment{
			FirstName:      optional(p.FirstName),
			LastName:       optional(p.LastName),
			Email:          optional(p.Email),
			Phone:          optional(p.Phone),
			PassportNumber: optional(p.PassportNumber),
			DateOfBirth:    optional(p.DateOfBirth),
			Gender:         optional(p.Gender),
			Nationality:    optional(p.Nationality),
		},
		Travel: &payment.TravelFragment{
			DepartureCity: optional(t.DepartureCity),
			ArrivalCity:   optional(t.ArrivalCity),
			DepartureDate: optional(t.DepartureDate),
			ReturnDate:    optional(t.ReturnDate),
			TravelClass:   optional(t.TravelClass),
			TripType:      optional(t.TripType),
		},
		Delivery: &payment.DeliveryFragment{
			DeliveryMethod: optional(d.DeliveryMethod),
			DeliveryEmail:  optional(d.DeliveryEmail),
			WhatsAppNumber: optional(d.WhatsAppNumber),
		},
		Billing: &payment.BillingFragment{
			BillingName:    optional(b.BillingName),
			BillingAddress: optional(b.BillingAddress),
			BillingCity:    optional(b.BillingCity),
			BillingZip:     optional(b.BillingZip),
			BillingCountry: optional(b.BillingCountry),
		},
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
