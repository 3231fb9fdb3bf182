// Package document renders the reservation summary a customer presents with a visa application.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"dummy-ticket/internal/data/entity"

	"github.com/phpdave11/gofpdf"
)

type Renderer struct {
	issuer string
	now    func() time.Time
}

func NewRenderer(issuer string) *Renderer {
	return &Renderer{issuer: issuer, now: time.Now}
}

// Render returns the PDF bytes and a download filename.
func (r *Renderer) Render(booking *entity.Booking) ([]byte, string, error) {
	d := booking.PassengerDetails

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation Summary", false)
	pdf.SetCreator(r.issuer, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RESERVATION SUMMARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Issued: "+r.now().UTC().Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	section(pdf, "Booking", []string{
		"Reference   : " + strings.ToUpper(booking.ID.String()[:8]),
		"Status      : " + string(booking.Status),
		fmt.Sprintf("Amount      : %.2f %s", booking.Amount, booking.Currency),
	})

	section(pdf, "Passenger", []string{
		"Name        : " + orDash(d.FullName()),
		"Passport    : " + value(d.PassportNumber),
		"Birth date  : " + value(d.DateOfBirth),
		"Nationality : " + value(d.Nationality),
	})

	section(pdf, "Itinerary", []string{
		fmt.Sprintf("Route       : %s -> %s", value(d.DepartureCity), value(d.ArrivalCity)),
		"Departure   : " + value(d.DepartureDate),
		"Return      : " + value(d.ReturnDate),
		"Class       : " + value(d.TravelClass),
		"Trip type   : " + value(d.TripType),
	})

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This document is a reservation summary for visa application purposes. It is not a travel ticket.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render reservation %s: %w", booking.ID.String(), err)
	}

	return buf.Bytes(), fmt.Sprintf("reservation_%s.pdf", booking.ID.String()), nil
}

func section(pdf *gofpdf.Fpdf, title string, lines []string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)

	pdf.SetFont("Courier", "", 11)
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func value(s *string) string {
	if s == nil {
		return "-"
	}
	return orDash(*s)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
