package request

type CreateMaintenanceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type UpdateMaintenanceRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
}

type UpdateMaintenanceStatusRequest struct {
	Status     string  `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	AssignedTo *string `json:"assigned_to,omitempty" validate:"omitempty,uuid4"`
}
