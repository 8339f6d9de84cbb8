package wire

import (
	"paramount-autos/internal/adaptor"
	"paramount-autos/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	deps Deps,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Post("/quote", bookingHandler.Quote)

		// reference lookups are throttled per client IP
		r.With(middleware.RateLimit(deps.Limiter, "track", log)).Get("/track", bookingHandler.TrackBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(deps.Repo.Session, log))
		r.Use(middleware.Admin(deps.Repo.User, log))

		r.Get("/", bookingHandler.GetBookings)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Put("/{id}", bookingHandler.UpdateBooking)
		r.Patch("/{id}/status", bookingHandler.UpdateStatus)
		r.Patch("/{id}/payment-status", bookingHandler.UpdatePaymentStatus)
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
