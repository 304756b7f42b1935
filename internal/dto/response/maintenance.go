package response

import (
	"time"

	"campus-resources/internal/data/entity"
)

type MaintenanceResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	AssignedTo  *string   `json:"assigned_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MaintenanceToResponse(m *entity.MaintenanceRequest) *MaintenanceResponse {
	resp := &MaintenanceResponse{
		ID:          m.ID.String(),
		UserID:      m.UserID.String(),
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Priority:    string(m.Priority),
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.AssignedTo != nil {
		assignee := m.AssignedTo.String()
		resp.AssignedTo = &assignee
	}
	return resp
}
