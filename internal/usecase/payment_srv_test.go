package usecase

import (
	"context"
	"errors"
	"testing"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/dto/request"
	"dummy-ticket/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type paymentFixture struct {
	gateway  *MockGateway
	deduper  *MockDeduper
	notifier *MockNotifier
	plans    *MockPlanRepository
	store    *memoryBookingStore
	service  PaymentService
}

func newPaymentFixture(store BookingStore) *paymentFixture {
	f := &paymentFixture{
		gateway:  new(MockGateway),
		deduper:  new(MockDeduper),
		notifier: new(MockNotifier),
		plans:    new(MockPlanRepository),
	}
	if store == nil {
		f.store = newMemoryBookingStore()
		store = f.store
	}
	reconciler := NewReconcileService(store, testConfig(), zap.NewNop())
	f.service = NewPaymentService(f.gateway, reconciler, f.plans, f.deduper, f.notifier, testConfig(), zap.NewNop())
	return f
}

func whatsAppSession(bookingID uuid.UUID) *payment.Session {
	session := paidSession(bookingID)
	session.Metadata[payment.MetaDelivery] = `{"delivery_method":"whatsapp","whatsapp_number":"+351911111111"}`
	return session
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	f := newPaymentFixture(nil)
	f.gateway.On("ParseWebhook", []byte("{}"), "bad").Return(nil, payment.ErrInvalidSignature)

	resp, err := f.service.HandleWebhook(context.Background(), []byte("{}"), "bad")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	f.deduper.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
}

func TestHandleWebhook_IgnoredEvents(t *testing.T) {
	unpaid := paidSession(uuid.New())
	unpaid.PaymentStatus = payment.PaymentStatusUnpaid

	events := map[string]*payment.Event{
		"other type":        {ID: "evt_a", Type: "payment_intent.created"},
		"unpaid completion": {ID: "evt_b", Type: payment.EventCheckoutCompleted, Session: unpaid},
	}

	for name, event := range events {
		t.Run(name, func(t *testing.T) {
			f := newPaymentFixture(nil)
			f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(event, nil)

			resp, err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig")

			require.NoError(t, err)
			assert.Equal(t, WebhookResultIgnored, resp.Result)
			assert.Equal(t, 0, f.store.rows())
			f.deduper.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleWebhook_CreatesBookingAndNotifies(t *testing.T) {
	f := newPaymentFixture(nil)
	bookingID := uuid.New()
	event := &payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, Session: whatsAppSession(bookingID)}

	f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(event, nil)
	f.deduper.On("Claim", mock.Anything, "evt_1").Return(true, nil)
	f.notifier.On("NotifyBookingPaid", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.ID == bookingID
	})).Return(nil).Once()

	resp, err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig")

	require.NoError(t, err)
	assert.Equal(t, WebhookResultCreated, resp.Result)
	assert.Equal(t, 1, f.store.rows())
	f.notifier.AssertExpectations(t)
	f.deduper.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestHandleWebhook_AsyncPaymentAfterVerify(t *testing.T) {
	f := newPaymentFixture(nil)
	session := paidSession(uuid.New())

	f.gateway.On("GetSession", mock.Anything, session.ID).Return(session, nil)
	_, err := f.service.VerifyPayment(context.Background(), nil, &request.VerifyPaymentRequest{SessionID: session.ID})
	require.NoError(t, err)

	event := &payment.Event{ID: "evt_2", Type: payment.EventAsyncPaymentSucceeded, Session: session}
	f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(event, nil)
	f.deduper.On("Claim", mock.Anything, "evt_2").Return(true, nil)

	resp, err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig")

	require.NoError(t, err)
	assert.Equal(t, WebhookResultExisted, resp.Result)
	assert.Equal(t, 1, f.store.rows())
	f.notifier.AssertNotCalled(t, "NotifyBookingPaid", mock.Anything, mock.Anything)
}

func TestHandleWebhook_DuplicateDelivery(t *testing.T) {
	f := newPaymentFixture(nil)
	event := &payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, Session: whatsAppSession(uuid.New())}

	f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(event, nil)
	f.deduper.On("Claim", mock.Anything, "evt_1").Return(false, nil)

	resp, err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig")

	require.NoError(t, err)
	assert.Equal(t, WebhookResultDuplicate, resp.Result)
	assert.Equal(t, 0, f.store.rows())
	f.notifier.AssertNotCalled(t, "NotifyBookingPaid", mock.Anything, mock.Anything)
}

func TestHandleWebhook_DedupUnavailableStillReconciles(t *testing.T) {
	f := newPaymentFixture(nil)
	event := &payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, Session: paidSession(uuid.New())}

	f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(event, nil)
	f.deduper.On("Claim", mock.Anything, "evt_1").Return(false, errors.New("redis down"))

	resp, err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig")

	require.NoError(t, err)
	assert.Equal(t, WebhookResultCreated, resp.Result)
}

func TestHandleWebhook_FailureReleasesClaim(t *testing.T) {
	store := new(MockBookingStore)
	f := newPaymentFixture(store)
	session := paidSession(uuid.New())
	event := &payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, Session: session}

	f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(event, nil)
	f.deduper.On("Claim", mock.Anything, "evt_1").Return(true, nil)
	f.deduper.On("Release", mock.Anything, "evt_1").Return(nil).Once()
	store.On("FindBySessionID", mock.Anything, session.ID).Return(nil, context.DeadlineExceeded)

	resp, err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig")

	assert.Nil(t, resp)
	assert.True(t, IsTransient(err))
	f.deduper.AssertExpectations(t)
}

func TestHandleWebhook_NotifierFailureIsNotFatal(t *testing.T) {
	f := newPaymentFixture(nil)
	event := &payment.Event{ID: "evt_1", Type: payment.EventCheckoutCompleted, Session: whatsAppSession(uuid.New())}

	f.gateway.On("ParseWebhook", mock.Anything, "sig").Return(event, nil)
	f.deduper.On("Claim", mock.Anything, "evt_1").Return(true, nil)
	f.notifier.On("NotifyBookingPaid", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	resp, err := f.service.HandleWebhook(context.Background(), []byte("{}"), "sig")

	require.NoError(t, err)
	assert.Equal(t, WebhookResultCreated, resp.Result)
}

func TestVerifyPayment(t *testing.T) {
	t.Run("provider failure", func(t *testing.T) {
		f := newPaymentFixture(nil)
		f.gateway.On("GetSession", mock.Anything, "cs_1").Return(nil, errors.New("timeout"))

		_, err := f.service.VerifyPayment(context.Background(), nil, &request.VerifyPaymentRequest{SessionID: "cs_1"})
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("not paid", func(t *testing.T) {
		f := newPaymentFixture(nil)
		session := paidSession(uuid.New())
		session.PaymentStatus = payment.PaymentStatusUnpaid
		f.gateway.On("GetSession", mock.Anything, session.ID).Return(session, nil)

		_, err := f.service.VerifyPayment(context.Background(), nil, &request.VerifyPaymentRequest{SessionID: session.ID})
		assert.ErrorIs(t, err, ErrPaymentNotComplete)
		assert.Equal(t, 0, f.store.rows())
	})

	t.Run("created then existing", func(t *testing.T) {
		f := newPaymentFixture(nil)
		bookingID := uuid.New()
		session := paidSession(bookingID)
		f.gateway.On("GetSession", mock.Anything, session.ID).Return(session, nil)
		req := &request.VerifyPaymentRequest{SessionID: session.ID}

		first, err := f.service.VerifyPayment(context.Background(), nil, req)
		require.NoError(t, err)
		second, err := f.service.VerifyPayment(context.Background(), nil, req)
		require.NoError(t, err)

		assert.True(t, first.Created)
		assert.False(t, second.Created)
		assert.Equal(t, bookingID.String(), first.Booking.ID)
		assert.Equal(t, first.Booking.ID, second.Booking.ID)
		assert.Nil(t, first.Booking.UserID)
	})

	t.Run("owned by someone else", func(t *testing.T) {
		f := newPaymentFixture(nil)
		owner := uuid.New()
		session := paidSession(uuid.New())
		session.Metadata[payment.MetaUserID] = owner.String()
		f.gateway.On("GetSession", mock.Anything, session.ID).Return(session, nil)
		req := &request.VerifyPaymentRequest{SessionID: session.ID}

		stranger := &entity.SessionPrincipal{UserID: uuid.New(), Role: entity.RoleUser}
		_, err := f.service.VerifyPayment(context.Background(), stranger, req)
		assert.ErrorIs(t, err, ErrForbidden)

		admin := &entity.SessionPrincipal{UserID: uuid.New(), Role: entity.RoleAdmin}
		resp, err := f.service.VerifyPayment(context.Background(), admin, req)
		require.NoError(t, err)
		assert.Equal(t, owner.String(), *resp.Booking.UserID)
	})

	t.Run("missing session id", func(t *testing.T) {
		f := newPaymentFixture(nil)
		_, err := f.service.VerifyPayment(context.Background(), nil, &request.VerifyPaymentRequest{})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func validCheckoutRequest(planID uuid.UUID) *request.CheckoutRequest {
	return &request.CheckoutRequest{
		PlanID: planID.String(),
		Passenger: request.PassengerInfo{
			FirstName: "Ana",
			LastName:  "Lima",
			Email:     "ana@example.com",
		},
		Travel: request.TravelInfo{
			DepartureCity: "Lisbon",
			ArrivalCity:   "Paris",
			DepartureDate: "2026-11-20",
			TripType:      "one_way",
		},
		Delivery: request.DeliveryInfo{
			DeliveryMethod: entity.DeliveryMethodWhatsApp,
			WhatsAppNumber: "+351911111111",
		},
		Billing: request.BillingInfo{BillingName: "Ana Lima", BillingCountry: "PT"},
	}
}

func TestCreateCheckout(t *testing.T) {
	f := newPaymentFixture(nil)
	plan := &entity.Plan{Name: "Flight reservation", Price: 19, Currency: "USD", IsActive: true}
	plan.ID = uuid.New()
	userID := uuid.New()

	f.plans.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)

	var captured payment.CheckoutRequest
	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(payment.CheckoutRequest) }).
		Return(&payment.CheckoutSession{ID: "cs_new", URL: "https://checkout.stripe.com/c/cs_new"}, nil)

	resp, err := f.service.CreateCheckout(context.Background(),
		&entity.SessionPrincipal{UserID: userID, Role: entity.RoleUser}, validCheckoutRequest(plan.ID))
	require.NoError(t, err)

	assert.Equal(t, "cs_new", resp.SessionID)
	assert.Equal(t, resp.BookingID, captured.Metadata[payment.MetaBookingID])
	assert.Equal(t, userID.String(), captured.Metadata[payment.MetaUserID])
	assert.Equal(t, "19.00", captured.Metadata[payment.MetaAmount])
	assert.Equal(t, "card", captured.Metadata[payment.MetaPaymentMethod])

	// What checkout writes, reconciliation must read back.
	details := payment.ParseFragments(captured.Metadata, zap.NewNop()).Details()
	assert.Equal(t, "Ana Lima", details.FullName())
	assert.Equal(t, "+351911111111", *details.WhatsAppNumber)
	assert.Nil(t, details.ReturnDate)
}

func TestCreateCheckout_GuestAndInactivePlan(t *testing.T) {
	f := newPaymentFixture(nil)
	plan := &entity.Plan{Name: "Hotel booking", Price: 15, Currency: "EUR", IsActive: false}
	plan.ID = uuid.New()
	f.plans.On("FindByID", mock.Anything, plan.ID).Return(plan, nil)

	_, err := f.service.CreateCheckout(context.Background(), nil, validCheckoutRequest(plan.ID))

	assert.ErrorIs(t, err, ErrNotFound)
	f.gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCreateCheckout_Validation(t *testing.T) {
	f := newPaymentFixture(nil)
	req := validCheckoutRequest(uuid.New())
	req.Delivery.WhatsAppNumber = ""
	req.Travel.TripType = "round_trip"

	_, err := f.service.CreateCheckout(context.Background(), nil, req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Delivery.WhatsAppNumber")
	assert.Contains(t, verr.Fields, "Travel.ReturnDate")
}
