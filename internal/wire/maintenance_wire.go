package wire

import (
	"campus-resources/internal/adaptor"
	"campus-resources/pkg/middleware"
	"campus-resources/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMaintenance(r chi.Router, maintenanceHandler *adaptor.MaintenanceHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/maintenance", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))

		// POST /api/maintenance - File a maintenance request
		r.Post("/", maintenanceHandler.CreateRequest)

		// GET /api/maintenance - Role-scoped listing
		r.Get("/", maintenanceHandler.ListRequests)

		// GET /api/maintenance/{id} - Single request
		r.Get("/{id}", maintenanceHandler.GetRequest)

		// PUT /api/maintenance/{id} - Edit fields (requester or privileged)
		r.Put("/{id}", maintenanceHandler.UpdateRequest)

		// DELETE /api/maintenance/{id} - Remove request (requester or admin)
		r.Delete("/{id}", maintenanceHandler.DeleteRequest)

		// PATCH /api/maintenance/{id}/status - Progress/assign (admin, staff, maintenance)
		r.With(middleware.RequireRoles(log, "admin", "staff", "maintenance")).
			Patch("/{id}/status", maintenanceHandler.UpdateRequestStatus)
	})
}
