package wire

import (
	"campus-resources/internal/adaptor"
	"campus-resources/pkg/middleware"
	"campus-resources/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(r chi.Router, eventHandler *adaptor.EventHandler, config *utils.Config, log *zap.Logger) {
	// GET /api/events - Campus calendar (public)
	r.Get("/api/events", eventHandler.ListEvents)

	// GET /api/events/{id} - Single event (public)
	r.Get("/api/events/{id}", eventHandler.GetEvent)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))

		// POST /api/events - Publish an event (organizer = caller)
		r.Post("/api/events", eventHandler.CreateEvent)

		// PUT /api/events/{id} - Edit event (organizer or admin)
		r.Put("/api/events/{id}", eventHandler.UpdateEvent)

		// DELETE /api/events/{id} - Remove event (organizer or admin)
		r.Delete("/api/events/{id}", eventHandler.DeleteEvent)
	})
}
