package wire

import (
	"campus-resources/internal/adaptor"
	"campus-resources/pkg/middleware"
	"campus-resources/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, config *utils.Config, log *zap.Logger) {
	// GET /api/bookings/availability - Free/busy check for a resource window (public)
	r.Get("/api/bookings/availability", bookingHandler.CheckAvailability)

	// GET /api/bookings - Listing degrades by principal: anonymous callers get
	// the approved-only summary view, so auth here is optional.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(config.JWT, log))

		r.Get("/api/bookings", bookingHandler.ListBookings)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))

		// POST /api/bookings - Request a slot (lands as pending)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Single booking (owner or privileged)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id} - Edit fields (owner or privileged)
		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)

		// DELETE /api/bookings/{id} - Remove booking (owner or privileged)
		r.Delete("/api/bookings/{id}", bookingHandler.DeleteBooking)

		// PATCH /api/bookings/{id}/status - Approve/reject/complete (admin, staff)
		r.With(middleware.RequireRoles(log, "admin", "staff")).
			Patch("/api/bookings/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
