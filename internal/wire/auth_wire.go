package wire

import (
	"dummy-ticket/internal/adaptor"
	"dummy-ticket/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	r.With(middleware.AuthSession(auth, log)).Post("/api/logout", authHandler.Logout)
}

func wireHealth(r chi.Router, healthHandler *adaptor.HealthHandler) {
	r.Get("/health", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
}
