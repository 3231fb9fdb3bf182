package wire

import (
	"dummy-ticket/internal/adaptor"
	"dummy-ticket/internal/data/repository"
	"dummy-ticket/internal/usecase"
	"dummy-ticket/pkg/middleware"
	"dummy-ticket/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes from already-connected infrastructure.
func Wiring(
	repo *repository.Repository,
	deps usecase.Dependencies,
	checks map[string]adaptor.Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, checks, logger)

	return &App{
		Router:  setupRouter(handler, service, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))
	r.Use(middleware.RequestTimeout(config.App.RequestTimeout))

	wireHealth(r, handler.Health)
	wireAuth(r, handler.Auth, service.Auth, logger)
	wireUser(r, handler.User, service.Auth, logger)
	wirePlan(r, handler.Plan, service.Auth, logger)
	wirePayment(r, handler.Payment, service.Auth, logger)
	wireBooking(r, handler.Booking, service.Auth, logger)

	return r
}
