package wire

import (
	"dummy-ticket/internal/adaptor"
	"dummy-ticket/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Route("/api/user/profile", func(r chi.Router) {
		r.Use(middleware.AuthSession(auth, log))
		r.Get("/", userHandler.GetProfile)
		r.Put("/", userHandler.UpdateProfile)
	})
}

func wirePlan(
	r chi.Router,
	planHandler *adaptor.PlanHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Get("/api/plans", planHandler.ListPlans)
	r.Get("/api/plans/{id}", planHandler.GetPlan)

	r.With(
		middleware.AuthSession(auth, log),
		middleware.Admin(log),
	).Route("/api/admin/plans", func(r chi.Router) {
		r.Post("/", planHandler.CreatePlan)
		r.Put("/{id}", planHandler.UpdatePlan)
	})
}
