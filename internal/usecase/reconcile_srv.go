package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/internal/payment"
	"dummy-ticket/pkg/database"
	"dummy-ticket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingStore is the persistence reconciliation needs. Create must report a
// uniqueness violation as repository.ErrDuplicate.
type BookingStore interface {
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Booking, error)
	Create(ctx context.Context, booking *entity.Booking) error
}

type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeCreated
	OutcomeAlreadyExisted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyExisted:
		return "already_existed"
	default:
		return "failed"
	}
}

type ReconcileResult struct {
	Booking *entity.Booking
	Outcome Outcome
}

// ReconcileService turns a paid checkout session into exactly one booking.
type ReconcileService interface {
	Reconcile(ctx context.Context, session *payment.Session) (ReconcileResult, error)
}

type reconcileState int

const (
	stateLookup reconcileState = iota
	stateInsert
	stateResolveConflict
)

const defaultPaymentMethod = "card"

type reconcileService struct {
	store   BookingStore
	timeout time.Duration
	now     func() time.Time
	log     *zap.Logger
}

func NewReconcileService(store BookingStore, config *utils.Config, log *zap.Logger) ReconcileService {
	return &reconcileService{
		store:   store,
		timeout: config.Payment.ReconcileTimeout,
		now:     time.Now,
		log:     log.With(zap.String("service", "reconcile")),
	}
}

// Reconcile runs lookup -> insert -> resolve-conflict. The existence check only
// saves a write; the unique constraint on stripe_session_id decides races.
func (s *reconcileService) Reconcile(ctx context.Context, session *payment.Session) (ReconcileResult, error) {
	bookingID, ok := bookingReference(session)
	if !ok {
		s.log.Error("Payment session without booking reference", zap.String("session_id", session.ID))
		return ReconcileResult{Outcome: OutcomeFailed}, fmt.Errorf("reconcile session %s: %w", session.ID, ErrMissingBookingReference)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.log.With(zap.String("session_id", session.ID), zap.String("booking_id", bookingID.String()))

	state := stateLookup
	for {
		switch state {
		case stateLookup:
			existing, err := s.store.FindBySessionID(ctx, session.ID)
			if err != nil {
				return s.fail(ctx, log, "lookup", err)
			}
			if existing != nil {
				log.Info("Booking already reconciled")
				return ReconcileResult{Booking: existing, Outcome: OutcomeAlreadyExisted}, nil
			}
			state = stateInsert

		case stateInsert:
			booking := s.buildBooking(session, bookingID, log)
			err := s.store.Create(ctx, booking)
			if err == nil {
				log.Info("Booking created",
					zap.Float64("amount", booking.Amount),
					zap.String("currency", booking.Currency),
				)
				return ReconcileResult{Booking: booking, Outcome: OutcomeCreated}, nil
			}
			if !errors.Is(err, repository.ErrDuplicate) {
				return s.fail(ctx, log, "insert", err)
			}
			state = stateResolveConflict

		case stateResolveConflict:
			winner, err := s.store.FindBySessionID(ctx, session.ID)
			if err != nil {
				return s.fail(ctx, log, "resolve conflict", err)
			}
			if winner == nil {
				log.Error("Booking id collides with another payment session")
				return ReconcileResult{Outcome: OutcomeFailed}, fmt.Errorf("reconcile session %s: %w", session.ID, ErrBookingIDConflict)
			}
			log.Info("Concurrent reconciliation resolved", zap.String("winner_id", winner.ID.String()))
			return ReconcileResult{Booking: winner, Outcome: OutcomeAlreadyExisted}, nil
		}
	}
}

func (s *reconcileService) fail(ctx context.Context, log *zap.Logger, op string, err error) (ReconcileResult, error) {
	transient := database.IsTransient(err) || errors.Is(ctx.Err(), context.DeadlineExceeded)
	log.Error("Booking reconciliation failed",
		zap.String("op", op),
		zap.Bool("transient", transient),
		zap.Error(err),
	)
	return ReconcileResult{Outcome: OutcomeFailed}, &PersistenceError{Op: op, Transient: transient, Err: err}
}

func (s *reconcileService) buildBooking(session *payment.Session, bookingID uuid.UUID, log *zap.Logger) *entity.Booking {
	meta := session.Metadata

	booking := &entity.Booking{
		UserID:           userReference(meta[payment.MetaUserID]),
		PlanID:           meta[payment.MetaPlanID],
		Amount:           resolveAmount(meta[payment.MetaAmount], session.AmountTotal),
		Currency:         resolveCurrency(meta[payment.MetaCurrency], session.Currency),
		Status:           entity.BookingStatusPaid,
		StripeSessionID:  session.ID,
		PaymentMethod:    resolvePaymentMethod(meta[payment.MetaPaymentMethod], session.PaymentMethodTypes),
		PassengerDetails: payment.ParseFragments(meta, log).Details(),
	}
	booking.ID = bookingID
	booking.Stamp(s.now())

	if session.PaymentIntentID != "" {
		intent := session.PaymentIntentID
		booking.PaymentIntentID = &intent
	}

	return booking
}

func bookingReference(session *payment.Session) (uuid.UUID, bool) {
	raw := strings.TrimSpace(session.Metadata[payment.MetaBookingID])
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// userReference maps "guest", empty and unparsable values to a null owner.
func userReference(raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == payment.GuestUserID {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return nil
	}
	return &id
}

func resolveAmount(raw string, amountTotal int64) float64 {
	if raw = strings.TrimSpace(raw); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err == nil && amount >= 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount) {
			return utils.RoundMoney(amount)
		}
	}
	return utils.RoundMoney(float64(amountTotal) / 100)
}

func resolveCurrency(raw, sessionCurrency string) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToUpper(raw)
	}
	return strings.ToUpper(strings.TrimSpace(sessionCurrency))
}

func resolvePaymentMethod(raw string, types []string) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return raw
	}
	if len(types) > 0 && types[0] != "" {
		return types[0]
	}
	return defaultPaymentMethod
}
