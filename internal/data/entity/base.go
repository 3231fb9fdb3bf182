package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by soft-deletable rows.
type Base struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Stamp sets both timestamps, for rows about to be inserted.
func (b *BaseNoDelete) Stamp(now time.Time) {
	b.CreatedAt = now
	b.UpdatedAt = now
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
