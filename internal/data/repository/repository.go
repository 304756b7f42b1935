package repository

import (
	"campus-resources/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Booking     BookingRepository
	Event       EventRepository
	Maintenance MaintenanceRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Event:       NewEventRepository(db, log),
		Maintenance: NewMaintenanceRepository(db, log),
	}
}
