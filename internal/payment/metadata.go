package payment

import (
	"encoding/json"
	"fmt"

	"dummy-ticket/internal/data/entity"

	"go.uber.org/zap"
)

// MaxMetadataValueLength is Stripe's per-value metadata limit.
const MaxMetadataValueLength = 500

type PassengerFragment struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	PassportNumber *string `json:"passport_number,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Nationality    *string `json:"nationality,omitempty"`
}

type TravelFragment struct {
	DepartureCity *string `json:"departure_city,omitempty"`
	ArrivalCity   *string `json:"arrival_city,omitempty"`
	DepartureDate *string `json:"departure_date,omitempty"`
	ReturnDate    *string `json:"return_date,omitempty"`
	TravelClass   *string `json:"travel_class,omitempty"`
	TripType      *string `json:"trip_type,omitempty"`
}

type DeliveryFragment struct {
	DeliveryMethod *string `json:"delivery_method,omitempty"`
	DeliveryEmail  *string `json:"delivery_email,omitempty"`
	WhatsAppNumber *string `json:"whatsapp_number,omitempty"`
}

type BillingFragment struct {
	BillingName    *string `json:"billing_name,omitempty"`
	BillingAddress *string `json:"billing_address,omitempty"`
	BillingCity    *string `json:"billing_city,omitempty"`
	BillingZip     *string `json:"billing_zip,omitempty"`
	BillingCountry *string `json:"billing_country,omitempty"`
}

// Fragments are the four independently encoded detail groups. A nil member
// means the group was absent or could not be decoded.
type Fragments struct {
	Passenger *PassengerFragment
	Travel    *TravelFragment
	Delivery  *DeliveryFragment
	Billing   *BillingFragment
}

// ParseFragments decodes each fragment on its own so one bad value never
// discards the others. Decode failures are logged at warn level.
func ParseFragments(metadata map[string]string, log *zap.Logger) Fragments {
	return Fragments{
		Passenger: parseFragment[PassengerFragment](metadata, MetaPassenger, log),
		Travel:    parseFragment[TravelFragment](metadata, MetaTravel, log),
		Delivery:  parseFragment[DeliveryFragment](metadata, MetaDelivery, log),
		Billing:   parseFragment[BillingFragment](metadata, MetaBilling, log),
	}
}

func parseFragment[T any](metadata map[string]string, key string, log *zap.Logger) *T {
	raw, ok := metadata[key]
	if !ok || raw == "" {
		return nil
	}

	var fragment T
	if err := json.Unmarshal([]byte(raw), &fragment); err != nil {
		log.Warn("Discarding undecodable metadata fragment",
			zap.String("key", key),
			zap.Int("length", len(raw)),
			zap.Error(err),
		)
		return nil
	}
	return &fragment
}

// Details flattens the fragments into the stored passenger-details document.
func (f Fragments) Details() entity.PassengerDetails {
	var d entity.PassengerDetails

	if p := f.Passenger; p != nil {
		d.FirstName = p.FirstName
		d.LastName = p.LastName
		d.Email = p.Email
		d.Phone = p.Phone
		d.PassportNumber = p.PassportNumber
		d.DateOfBirth = p.DateOfBirth
		d.Gender = p.Gender
		d.Nationality = p.Nationality
	}
	if t := f.Travel; t != nil {
		d.DepartureCity = t.DepartureCity
		d.ArrivalCity = t.ArrivalCity
		d.DepartureDate = t.DepartureDate
		d.ReturnDate = t.ReturnDate
		d.TravelClass = t.TravelClass
		d.TripType = t.TripType
	}
	if dl := f.Delivery; dl != nil {
		d.DeliveryMethod = dl.DeliveryMethod
		d.DeliveryEmail = dl.DeliveryEmail
		d.WhatsAppNumber = dl.WhatsAppNumber
	}
	if b := f.Billing; b != nil {
		d.BillingName = b.BillingName
		d.BillingAddress = b.BillingAddress
		d.BillingCity = b.BillingCity
		d.BillingZip = b.BillingZip
		d.BillingCountry = b.BillingCountry
	}

	return d
}

// Encode writes the non-nil fragments into metadata, enforcing the per-value limit.
func (f Fragments) Encode(metadata map[string]string) error {
	parts := []struct {
		key   string
		value any
		set   bool
	}{
		{MetaPassenger, f.Passenger, f.Passenger != nil},
		{MetaTravel, f.Travel, f.Travel != nil},
		{MetaDelivery, f.Delivery, f.Delivery != nil},
		{MetaBilling, f.Billing, f.Billing != nil},
	}

	for _, part := range parts {
		if !part.set {
			continue
		}
		raw, err := json.Marshal(part.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", part.key, err)
		}
		if len(raw) > MaxMetadataValueLength {
			return fmt.Errorf("%s is %d characters: %w", part.key, len(raw), ErrMetadataTooLong)
		}
		metadata[part.key] = string(raw)
	}

	return nil
}
