package repository

import (
	"errors"

	"dummy-ticket/pkg/database"

	"go.uber.org/zap"
)

var (
	// ErrDuplicate is returned by Create when a unique constraint rejects the row.
	ErrDuplicate = errors.New("duplicate record")
	ErrNotFound  = errors.New("record not found")
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Plan    PlanRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Plan:    NewPlanRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
