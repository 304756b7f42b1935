package adaptor

import (
	"errors"
	"net/http"

	"campus-resources/internal/data/entity"
	"campus-resources/internal/dto/response"
	"campus-resources/internal/usecase"
	"campus-resources/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Booking     *BookingHandler
	Event       *EventHandler
	Maintenance *MaintenanceHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Booking:     NewBookingHandler(service.Booking, log),
		Event:       NewEventHandler(service.Event, log),
		Maintenance: NewMaintenanceHandler(service.Maintenance, log),
	}
}

// actorFromRequest rebuilds the acting principal from the request context.
// Unauthenticated requests yield the zero Actor.
func actorFromRequest(r *http.Request) entity.Actor {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return entity.Actor{}
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return entity.Actor{ID: userID, Role: entity.UserRole(role)}
}

// handleServiceError maps service errors to HTTP responses by sentinel, not by
// message text.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var conflictErr *usecase.ConflictError

	switch {
	case errors.As(err, &conflictErr):
		log.Warn(operation+" failed - booking conflict",
			zap.String("resource_name", conflictErr.ResourceName),
			zap.Int("conflicts", len(conflictErr.Conflicts)))
		utils.ResponseConflict(w, conflictErr.Error(),
			map[string]any{"conflicts": response.BookingsToConflictSummaries(conflictErr.Conflicts)})

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - bad credentials")
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken):
		log.Warn(operation+" failed - duplicate email", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidWindow),
		errors.Is(err, usecase.ErrInvalidID),
		errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
