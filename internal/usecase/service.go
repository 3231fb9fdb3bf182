package usecase

import (
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Plan      PlanService
	Booking   BookingService
	Reconcile ReconcileService
	Payment   PaymentService
}

// Dependencies are the adapters to external systems the services call out to.
type Dependencies struct {
	Gateway  PaymentGateway
	Deduper  EventDeduper
	Notifier Notifier
	Renderer DocumentRenderer
}

func NewService(repo *repository.Repository, deps Dependencies, config *utils.Config, log *zap.Logger) *Service {
	reconcile := NewReconcileService(repo.Booking, config, log)

	return &Service{
		Auth:      NewAuthService(repo.User, repo.Session, config, log),
		User:      NewUserService(repo.User, log),
		Plan:      NewPlanService(repo.Plan, log),
		Booking:   NewBookingService(repo.Booking, deps.Renderer, log),
		Reconcile: reconcile,
		Payment:   NewPaymentService(deps.Gateway, reconcile, repo.Plan, deps.Deduper, deps.Notifier, config, log),
	}
}
