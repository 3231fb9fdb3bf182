package repository

import (
	"context"
	"testing"
	"time"

	"dummy-ticket/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock, zap.NewNop())

	user := &entity.User{FullName: "Ana Lima", Email: "ana@example.com", Role: entity.RoleUser, IsActive: true}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	mock.ExpectExec("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_RevokeUnknownToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())

	mock.ExpectExec("UPDATE sessions").
		WithArgs("tok").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Revoke(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepository_FindValidSessionMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())

	mock.ExpectQuery("FROM sessions s").
		WithArgs("expired").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "role"}))

	principal, err := repo.FindValidSession(context.Background(), "expired")
	require.NoError(t, err)
	assert.Nil(t, principal)
}
