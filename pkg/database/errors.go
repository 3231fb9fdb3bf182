package database

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsTransient reports whether retrying the same statement later may succeed:
// timeouts, dropped connections and the 08/40/53/57P classes (connection,
// transaction rollback, insufficient resources, operator intervention).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "08", "40", "53":
			return true
		case "57":
			return pgErr.Code == "57P01" || pgErr.Code == "57P02" || pgErr.Code == "57P03"
		}
	}

	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
