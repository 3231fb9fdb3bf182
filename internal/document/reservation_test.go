package document

import (
	"bytes"
	"testing"

	"dummy-ticket/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	first, last, from := "Ana", "Lima", "Lisbon"
	booking := &entity.Booking{
		Amount:   49,
		Currency: "USD",
		Status:   entity.BookingStatusPaid,
		PassengerDetails: entity.PassengerDetails{
			FirstName:     &first,
			LastName:      &last,
			DepartureCity: &from,
		},
	}
	booking.ID = uuid.MustParse("6f1c2a9e-3b1d-4c55-8a43-1d2e3f4a5b6c")

	pdf, filename, err := NewRenderer("dummy-ticket").Render(booking)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Equal(t, "reservation_6f1c2a9e-3b1d-4c55-8a43-1d2e3f4a5b6c.pdf", filename)
}
