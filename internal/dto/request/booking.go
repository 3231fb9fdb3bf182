package request

// CheckoutRequest opens a hosted payment session for one dummy ticket.
type CheckoutRequest struct {
	PlanID        string        `json:"plan_id" validate:"required,uuid"`
	PaymentMethod string        `json:"payment_method" validate:"omitempty,oneof=card"`
	Passenger     PassengerInfo `json:"passenger"`
	Travel        TravelInfo    `json:"travel"`
	Delivery      DeliveryInfo  `json:"delivery"`
	Billing       BillingInfo   `json:"billing"`
}

type PassengerInfo struct {
	FirstName      string `json:"first_name" validate:"required,max=60"`
	LastName       string `json:"last_name" validate:"required,max=60"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,e164"`
	PassportNumber string `json:"passport_number" validate:"omitempty,max=20"`
	DateOfBirth    string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female other"`
	Nationality    string `json:"nationality" validate:"omitempty,iso3166_1_alpha2"`
}

type TravelInfo struct {
	DepartureCity string `json:"departure_city" validate:"required,max=60"`
	ArrivalCity   string `json:"arrival_city" validate:"required,max=60"`
	DepartureDate string `json:"departure_date" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"return_date" validate:"required_if=TripType round_trip,omitempty,datetime=2006-01-02"`
	TravelClass   string `json:"travel_class" validate:"omitempty,oneof=economy premium_economy business first"`
	TripType      string `json:"trip_type" validate:"required,oneof=one_way round_trip"`
}

type DeliveryInfo struct {
	DeliveryMethod string `json:"delivery_method" validate:"required,oneof=email whatsapp"`
	DeliveryEmail  string `json:"delivery_email" validate:"required_if=DeliveryMethod email,omitempty,email"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"required_if=DeliveryMethod whatsapp,omitempty,e164"`
}

type BillingInfo struct {
	BillingName    string `json:"billing_name" validate:"required,max=120"`
	BillingAddress string `json:"billing_address" validate:"omitempty,max=200"`
	BillingCity    string `json:"billing_city" validate:"omitempty,max=60"`
	BillingZip     string `json:"billing_zip" validate:"omitempty,max=20"`
	BillingCountry string `json:"billing_country" validate:"omitempty,iso3166_1_alpha2"`
}

type VerifyPaymentRequest struct {
	SessionID string `json:"session_id" validate:"required,max=255"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending paid processing delivered cancelled refunded"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid processing delivered cancelled refunded"`
}
