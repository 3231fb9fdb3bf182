package usecase

import (
	"context"
	"sync"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memoryBookingStore enforces the same uniqueness rules as the bookings table.
type memoryBookingStore struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*entity.Booking
	bySession map[string]*entity.Booking
	creates   int

	// beforeCreate runs before the uniqueness check, outside the lock.
	beforeCreate func()
}

func newMemoryBookingStore() *memoryBookingStore {
	return &memoryBookingStore{
		byID:      map[uuid.UUID]*entity.Booking{},
		bySession: map[string]*entity.Booking{},
	}
}

func (m *memoryBookingStore) FindBySessionID(_ context.Context, sessionID string) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bySession[sessionID], nil
}

func (m *memoryBookingStore) Create(_ context.Context, booking *entity.Booking) error {
	if m.beforeCreate != nil {
		m.beforeCreate()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++

	if _, ok := m.byID[booking.ID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := m.bySession[booking.StripeSessionID]; ok {
		return repository.ErrDuplicate
	}

	stored := *booking
	m.byID[booking.ID] = &stored
	m.bySession[booking.StripeSessionID] = &stored
	return nil
}

func (m *memoryBookingStore) rows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) FindBySessionID(ctx context.Context, sessionID string) (*entity.Booking, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingStore) Create(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockGateway) GetSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

func (m *MockGateway) ParseWebhook(payload []byte, signature string) (*payment.Event, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Event), args.Error(1)
}

type MockDeduper struct {
	mock.Mock
}

func (m *MockDeduper) Claim(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeduper) Release(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingPaid(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAllActive(ctx context.Context) ([]*entity.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Plan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *entity.Plan) error {
	return m.Called(ctx, plan).Error(0)
}
