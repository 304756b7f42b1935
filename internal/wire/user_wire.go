package wire

import (
	"campus-resources/internal/adaptor"
	"campus-resources/pkg/middleware"
	"campus-resources/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))

		// GET /api/users/me - Own profile
		r.Get("/me", userHandler.GetProfile)

		// GET /api/users/maintenance-staff - Assignable maintenance workers
		r.Get("/maintenance-staff", userHandler.ListMaintenanceStaff)

		// GET /api/users - All accounts (admin)
		r.Get("/", userHandler.ListUsers)

		// GET /api/users/{id} - Single account (self or admin)
		r.Get("/{id}", userHandler.GetUserByID)
	})
}
