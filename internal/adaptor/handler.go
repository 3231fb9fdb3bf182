package adaptor

import (
	"dummy-ticket/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Plan    *PlanHandler
	Payment *PaymentHandler
	Booking *BookingHandler
	Health  *HealthHandler
}

func NewHandler(service *usecase.Service, checks map[string]Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Plan:    NewPlanHandler(service.Plan, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Booking: NewBookingHandler(service.Booking, log),
		Health:  NewHealthHandler(checks, log),
	}
}
