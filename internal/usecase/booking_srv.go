package usecase

import (
	"context"
	"errors"
	"fmt"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/internal/dto/request"
	"dummy-ticket/internal/dto/response"
	"dummy-ticket/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentRenderer produces the downloadable reservation summary.
type DocumentRenderer interface {
	Render(booking *entity.Booking) ([]byte, string, error)
}

type BookingService interface {
	// Customer endpoints
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, principal *entity.SessionPrincipal, bookingID string) (*response.BookingResponse, error)
	GetDocument(ctx context.Context, principal *entity.SessionPrincipal, bookingID string) ([]byte, string, error)

	// Admin endpoints
	ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	renderer DocumentRenderer
	log      *zap.Logger
}

func NewBookingService(bookings repository.BookingRepository, renderer DocumentRenderer, log *zap.Logger) BookingService {
	return &bookingService{
		bookings: bookings,
		renderer: renderer,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.bookings.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings of user %s: %w", userID.String(), err)
	}

	total, err := s.bookings.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookings of user %s: %w", userID.String(), err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), max(req.Page, 1), req.Limit(), total), nil
}

func (s *bookingService) GetBooking(ctx context.Context, principal *entity.SessionPrincipal, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findVisible(ctx, principal, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetDocument(ctx context.Context, principal *entity.SessionPrincipal, bookingID string) ([]byte, string, error) {
	booking, err := s.findVisible(ctx, principal, bookingID)
	if err != nil {
		return nil, "", err
	}

	if !booking.Status.IsFulfillable() {
		return nil, "", fmt.Errorf("booking is %s: %w", booking.Status, ErrPaymentNotComplete)
	}

	pdf, filename, err := s.renderer.Render(booking)
	if err != nil {
		s.log.Error("Failed to render reservation", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, "", err
	}

	return pdf, filename, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	status := entity.BookingStatus(req.Status)
	bookings, err := s.bookings.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.bookings.CountAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	status := entity.BookingStatus(req.Status)
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
		}
		return nil, err
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", req.Status),
	)

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// findVisible loads a booking the principal may see. Guest bookings have no
// owner and are reachable by id; owned bookings need the owner or an admin.
func (s *bookingService) findVisible(ctx context.Context, principal *entity.SessionPrincipal, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	if booking.UserID == nil {
		return booking, nil
	}
	if principal == nil || (principal.Role != entity.RoleAdmin && !booking.OwnedBy(principal.UserID)) {
		return nil, ErrForbidden
	}

	return booking, nil
}
