package response

import (
	"time"

	"campus-resources/internal/data/entity"
)

type BookingResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	ResourceType string    `json:"resource_type"`
	ResourceName string    `json:"resource_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Reason       *string   `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookingSummary is the reduced projection served to anonymous callers: just
// enough to render a busy calendar, nothing about who booked or why.
type BookingSummary struct {
	ID           string    `json:"id"`
	ResourceName string    `json:"resource_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
}

// ConflictSummary describes one colliding booking inside a 409 payload or an
// availability report.
type ConflictSummary struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type AvailabilityResponse struct {
	ResourceName string            `json:"resource_name"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	Available    bool              `json:"available"`
	Busy         []ConflictSummary `json:"busy"`
}

func BookingToResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID.String(),
		OwnerID:      b.OwnerID.String(),
		ResourceType: b.ResourceType,
		ResourceName: b.ResourceName,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
		Reason:       b.Reason,
		CreatedAt:    b.CreatedAt,
	}
}

func BookingToSummary(b *entity.Booking) BookingSummary {
	return BookingSummary{
		ID:           b.ID.String(),
		ResourceName: b.ResourceName,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
	}
}

func BookingsToConflictSummaries(bookings []*entity.Booking) []ConflictSummary {
	summaries := make([]ConflictSummary, len(bookings))
	for i, b := range bookings {
		summaries[i] = ConflictSummary{
			ID:        b.ID.String(),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
		}
	}
	return summaries
}
