package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dummy-ticket/internal/data/entity"
	"dummy-ticket/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Admin queries; an empty status matches every booking.
	FindAll(ctx context.Context, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, status entity.BookingStatus) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, plan_id, amount, currency, status, stripe_session_id,
		       payment_intent_id, payment_method, passenger_details, created_at, updated_at`

// Create inserts the booking. A unique violation on either the primary key or
// stripe_session_id is reported as ErrDuplicate.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, plan_id, amount, currency, status, stripe_session_id,
		                      payment_intent_id, payment_method, passenger_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	details, err := json.Marshal(booking.PassengerDetails)
	if err != nil {
		return fmt.Errorf("encode passenger details for booking %s: %w", booking.ID.String(), err)
	}

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.PlanID,
		booking.Amount,
		booking.Currency,
		booking.Status,
		booking.StripeSessionID,
		booking.PaymentIntentID,
		booking.PaymentMethod,
		details,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if database.IsUniqueViolation(err) {
		r.log.Info("Booking already recorded",
			zap.String("booking_id", booking.ID.String()),
			zap.String("stripe_session_id", booking.StripeSessionID),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("stripe_session_id", booking.StripeSessionID),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE stripe_session_id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by session ID",
			zap.Error(err),
			zap.String("stripe_session_id", sessionID),
		)
		return nil, fmt.Errorf("find booking by session ID %s: %w", sessionID, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.String("status", string(status)),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings status %q: %w", status, err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context, status entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE ($1 = '' OR status = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, string(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err), zap.String("status", string(status)))
		return 0, fmt.Errorf("count bookings status %q: %w", status, err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", bookingID.String(), ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) collect(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func scanBooking(row scanner) (*entity.Booking, error) {
	var booking entity.Booking
	var details []byte
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.PlanID,
		&booking.Amount,
		&booking.Currency,
		&booking.Status,
		&booking.StripeSessionID,
		&booking.PaymentIntentID,
		&booking.PaymentMethod,
		&details,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &booking.PassengerDetails); err != nil {
			return nil, fmt.Errorf("decode passenger details: %w", err)
		}
	}

	return &booking, nil
}
