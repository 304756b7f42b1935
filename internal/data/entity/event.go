package entity

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	BaseSimple
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Location    *string   `db:"location"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	OrganizerID uuid.UUID `db:"organizer_id"`
	Category    *string   `db:"category"`
}
