package request

import "time"

type CreateBookingRequest struct {
	ResourceType     string    `json:"resource_type" validate:"required"`
	ResourceName     string    `json:"resource_name" validate:"required"`
	StartTime        time.Time `json:"start_time" validate:"required"`
	EndTime          time.Time `json:"end_time" validate:"required"`
	Reason           *string   `json:"reason,omitempty"`
	OnBehalfOfUserID *string   `json:"on_behalf_of_user_id,omitempty" validate:"omitempty,uuid4"`
}

// UpdateBookingRequest carries a partial edit; nil fields keep their current
// value. Status and owner are never editable through this request.
type UpdateBookingRequest struct {
	ResourceType *string    `json:"resource_type,omitempty"`
	ResourceName *string    `json:"resource_name,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Reason       *string    `json:"reason,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected completed"`
}
