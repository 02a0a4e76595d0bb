package wire

import (
	"glam-booking/internal/adaptor"
	"glam-booking/internal/data/repository"
	"glam-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// All booking routes require authentication
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{ref} - Booking detail, by id or code
		r.Get("/api/bookings/{ref}", bookingHandler.GetBooking)

		// PATCH /api/bookings/{ref}/status - Confirm/reject/cancel/complete
		r.Patch("/api/bookings/{ref}/status", bookingHandler.UpdateStatus)

		// GET /api/user/bookings - Bookings I placed as a customer
		r.Get("/api/user/bookings", bookingHandler.GetMyBookings)

		// GET /api/owner/bookings - Bookings on my listings
		r.Get("/api/owner/bookings", bookingHandler.GetOwnerBookings)
	})
}
