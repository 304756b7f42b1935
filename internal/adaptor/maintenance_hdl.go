package adaptor

import (
	"encoding/json"
	"net/http"

	"campus-resources/internal/dto/request"
	"campus-resources/internal/usecase"
	"campus-resources/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MaintenanceHandler struct {
	service usecase.MaintenanceService
	log     *zap.Logger
}

func NewMaintenanceHandler(service usecase.MaintenanceService, log *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		service: service,
		log:     log.With(zap.String("handler", "maintenance")),
	}
}

// CreateRequest handles POST /api/maintenance (protected)
func (h *MaintenanceHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	record, err := h.service.Create(r.Context(), actorFromRequest(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create maintenance request")
		return
	}

	utils.ResponseCreated(w, "Maintenance request created", record)
}

// ListRequests handles GET /api/maintenance (protected, role-scoped)
func (h *MaintenanceHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context(), actorFromRequest(r))
	if err != nil {
		handleServiceError(h.log, w, err, "list maintenance requests")
		return
	}

	utils.ResponseSuccess(w, "success", records)
}

// GetRequest handles GET /api/maintenance/{id} (protected)
func (h *MaintenanceHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	record, err := h.service.Get(r.Context(), actorFromRequest(r), requestID)
	if err != nil {
		handleServiceError(h.log, w, err, "get maintenance request")
		return
	}

	utils.ResponseSuccess(w, "success", record)
}

// UpdateRequest handles PUT /api/maintenance/{id} (requester or privileged)
func (h *MaintenanceHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	var req request.UpdateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	record, err := h.service.Update(r.Context(), actorFromRequest(r), requestID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update maintenance request")
		return
	}

	utils.ResponseSuccess(w, "Maintenance request updated", record)
}

// UpdateRequestStatus handles PATCH /api/maintenance/{id}/status
func (h *MaintenanceHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	var req request.UpdateMaintenanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	record, err := h.service.SetStatus(r.Context(), actorFromRequest(r), requestID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update maintenance status")
		return
	}

	utils.ResponseSuccess(w, "Maintenance status updated", record)
}

// DeleteRequest handles DELETE /api/maintenance/{id} (requester or admin)
func (h *MaintenanceHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		utils.ResponseBadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), actorFromRequest(r), requestID); err != nil {
		handleServiceError(h.log, w, err, "delete maintenance request")
		return
	}

	utils.ResponseSuccess(w, "Maintenance request deleted", nil)
}
