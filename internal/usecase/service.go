package usecase

import (
	"campus-resources/internal/data/repository"
	"campus-resources/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Booking     BookingService
	Event       EventService
	Maintenance MaintenanceService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo.User, log),
		Booking:     NewBookingService(repo, log),
		Event:       NewEventService(repo.Event, log),
		Maintenance: NewMaintenanceService(repo.Maintenance, log),
	}
}
