package adaptor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/dto/request"
	"dummy-ticket/internal/dto/response"
	"dummy-ticket/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, principal *entity.SessionPrincipal, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, principal, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetDocument(ctx context.Context, principal *entity.SessionPrincipal, bookingID string) ([]byte, string, error) {
	args := m.Called(ctx, principal, bookingID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockBookingService) ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func routeBookings(h *BookingHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/bookings/{id}", h.GetBooking)
	r.Get("/api/bookings/{id}/document", h.DownloadDocument)
	r.Get("/api/admin/bookings", h.ListBookings)
	return r
}

func TestBookingHandler_DownloadDocument(t *testing.T) {
	id := uuid.NewString()
	svc := new(MockBookingService)
	svc.On("GetDocument", mock.Anything, (*entity.SessionPrincipal)(nil), id).
		Return([]byte("%PDF-1.3 test"), "reservation_"+id+".pdf", nil)

	rec := httptest.NewRecorder()
	routeBookings(NewBookingHandler(svc, zap.NewNop())).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/"+id+"/document", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "reservation_"+id+".pdf")
	assert.Equal(t, "%PDF-1.3 test", rec.Body.String())
}

func TestBookingHandler_GetBookingErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: usecase.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: usecase.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("GetBooking", mock.Anything, (*entity.SessionPrincipal)(nil), "b-1").Return(nil, tt.err)

			rec := httptest.NewRecorder()
			routeBookings(NewBookingHandler(svc, zap.NewNop())).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/b-1", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestBookingHandler_ListBookingsQuery(t *testing.T) {
	svc := new(MockBookingService)
	want := &request.BookingListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 5},
		Status:           "paid",
	}
	svc.On("ListBookings", mock.Anything, want).
		Return(response.NewPaginatedResponse([]response.BookingResponse{}, 2, 5, 0), nil)

	rec := httptest.NewRecorder()
	routeBookings(NewBookingHandler(svc, zap.NewNop())).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/bookings?status=paid&page=2&per_page=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler_Ready(t *testing.T) {
	healthy := NewHealthHandler(map[string]Pinger{"postgres": stubPinger{}, "redis": stubPinger{}}, zap.NewNop())
	rec := httptest.NewRecorder()
	healthy.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	degraded := NewHealthHandler(map[string]Pinger{"postgres": stubPinger{}, "redis": stubPinger{err: errors.New("refused")}}, zap.NewNop())
	rec = httptest.NewRecorder()
	degraded.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"down"`)
}
