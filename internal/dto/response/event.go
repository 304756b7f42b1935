package response

import (
	"time"

	"campus-resources/internal/data/entity"
)

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	OrganizerID string    `json:"organizer_id"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func EventToResponse(e *entity.Event) *EventResponse {
	return &EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		OrganizerID: e.OrganizerID.String(),
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
	}
}
