package wire

import (
	"dummy-ticket/internal/adaptor"
	"dummy-ticket/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wirePayment mounts checkout, verification and the provider webhook.
// Checkout and verify accept guests; the webhook is authenticated by its signature.
func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(auth, log))
		r.Post("/api/checkout", paymentHandler.CreateCheckout)
		r.Post("/api/payments/verify", paymentHandler.VerifyPayment)
	})

	r.Post("/api/webhooks/stripe", paymentHandler.Webhook)
}

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	auth middleware.Authenticator,
	log *zap.Logger,
) {
	r.With(middleware.AuthSession(auth, log)).Get("/api/user/bookings", bookingHandler.GetUserBookings)

	// Guest bookings are reachable by id alone.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(auth, log))
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Get("/api/bookings/{id}/document", bookingHandler.DownloadDocument)
	})

	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(auth, log))
		r.Use(middleware.Admin(log))

		r.Get("/", bookingHandler.ListBookings)
		r.Put("/{id}/status", bookingHandler.UpdateStatus)
	})
}
