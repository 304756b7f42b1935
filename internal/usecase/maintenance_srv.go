package usecase

import (
	"context"
	"fmt"
	"time"

	"campus-resources/internal/data/entity"
	"campus-resources/internal/data/repository"
	"campus-resources/internal/dto/request"
	"campus-resources/internal/dto/response"
	"campus-resources/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaintenanceService interface {
	Create(ctx context.Context, actor entity.Actor, req *request.CreateMaintenanceRequest) (*response.MaintenanceResponse, error)
	Get(ctx context.Context, actor entity.Actor, requestID string) (*response.MaintenanceResponse, error)
	List(ctx context.Context, actor entity.Actor) ([]*response.MaintenanceResponse, error)
	Update(ctx context.Context, actor entity.Actor, requestID string, req *request.UpdateMaintenanceRequest) (*response.MaintenanceResponse, error)
	SetStatus(ctx context.Context, actor entity.Actor, requestID string, req *request.UpdateMaintenanceStatusRequest) (*response.MaintenanceResponse, error)
	Delete(ctx context.Context, actor entity.Actor, requestID string) error
}

type maintenanceService struct {
	repo repository.MaintenanceRepository
	log  *zap.Logger
}

func NewMaintenanceService(repo repository.MaintenanceRepository, log *zap.Logger) MaintenanceService {
	return &maintenanceService{
		repo: repo,
		log:  log.With(zap.String("service", "maintenance")),
	}
}

func (s *maintenanceService) Create(ctx context.Context, actor entity.Actor, req *request.CreateMaintenanceRequest) (*response.MaintenanceResponse, error) {
	if actor.Anonymous() {
		return nil, fmt.Errorf("create maintenance request: %w", ErrForbidden)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create maintenance request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	priority := entity.PriorityMedium
	if req.Priority != "" {
		priority = entity.MaintenancePriority(req.Priority)
	}

	now := time.Now()
	record := &entity.MaintenanceRequest{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Priority:    priority,
		Status:      entity.MaintenanceStatusPending,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error("Failed to create maintenance request", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create maintenance request: %w", err)
	}

	s.log.Info("Maintenance request created",
		zap.String("request_id", record.ID.String()),
		zap.String("priority", string(record.Priority)),
		zap.String("user_id", actor.ID.String()),
	)

	return response.MaintenanceToResponse(record), nil
}

func (s *maintenanceService) Get(ctx context.Context, actor entity.Actor, requestID string) (*response.MaintenanceResponse, error) {
	record, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !s.canView(actor, record) {
		return nil, fmt.Errorf("maintenance request %s: %w", requestID, ErrForbidden)
	}

	return response.MaintenanceToResponse(record), nil
}

func (s *maintenanceService) List(ctx context.Context, actor entity.Actor) ([]*response.MaintenanceResponse, error) {
	var records []*entity.MaintenanceRequest
	var err error

	switch {
	case actor.Privileged():
		records, err = s.repo.FindAll(ctx)
	case actor.Role == entity.RoleMaintenance:
		records, err = s.repo.FindByAssignee(ctx, actor.ID)
	default:
		records, err = s.repo.FindByUserID(ctx, actor.ID)
	}
	if err != nil {
		s.log.Error("Failed to list maintenance requests", zap.Error(err), zap.String("actor_id", actor.ID.String()))
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}

	responses := make([]*response.MaintenanceResponse, len(records))
	for i, record := range records {
		responses[i] = response.MaintenanceToResponse(record)
	}
	return responses, nil
}

func (s *maintenanceService) Update(ctx context.Context, actor entity.Actor, requestID string, req *request.UpdateMaintenanceRequest) (*response.MaintenanceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	record, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !actor.Privileged() && record.UserID != actor.ID {
		return nil, fmt.Errorf("maintenance request %s: %w", requestID, ErrForbidden)
	}

	// Closed tickets stay closed; only field edits on open tickets.
	if record.Status == entity.MaintenanceStatusCompleted || record.Status == entity.MaintenanceStatusCancelled {
		return nil, fmt.Errorf("maintenance request %s is %s: %w", requestID, record.Status, ErrForbidden)
	}

	updated := *record
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Location != nil {
		updated.Location = *req.Location
	}
	if req.Priority != nil {
		updated.Priority = entity.MaintenancePriority(*req.Priority)
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.log.Error("Failed to update maintenance request", zap.Error(err), zap.String("request_id", requestID))
		return nil, fmt.Errorf("update maintenance request: %w", err)
	}

	s.log.Info("Maintenance request updated", zap.String("request_id", requestID))

	return response.MaintenanceToResponse(&updated), nil
}

func (s *maintenanceService) SetStatus(ctx context.Context, actor entity.Actor, requestID string, req *request.UpdateMaintenanceStatusRequest) (*response.MaintenanceResponse, error) {
	if !actor.Privileged() && actor.Role != entity.RoleMaintenance {
		return nil, fmt.Errorf("status changes require admin, staff or maintenance role: %w", ErrForbidden)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	record, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	updated := *record
	updated.Status = entity.MaintenanceStatus(req.Status)
	if req.AssignedTo != nil {
		assignee, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("assignee ID %s: %w", *req.AssignedTo, ErrInvalidID)
		}
		updated.AssignedTo = &assignee
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.log.Error("Failed to update maintenance status",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("status", req.Status),
		)
		return nil, fmt.Errorf("update maintenance status: %w", err)
	}

	s.log.Info("Maintenance status changed",
		zap.String("request_id", requestID),
		zap.String("from", string(record.Status)),
		zap.String("to", req.Status),
	)

	return response.MaintenanceToResponse(&updated), nil
}

func (s *maintenanceService) Delete(ctx context.Context, actor entity.Actor, requestID string) error {
	record, err := s.findRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if actor.Role != entity.RoleAdmin && record.UserID != actor.ID {
		return fmt.Errorf("maintenance request %s: %w", requestID, ErrForbidden)
	}

	if err := s.repo.Delete(ctx, record.ID); err != nil {
		s.log.Error("Failed to delete maintenance request", zap.Error(err), zap.String("request_id", requestID))
		return fmt.Errorf("delete maintenance request: %w", err)
	}

	s.log.Info("Maintenance request deleted", zap.String("request_id", requestID))
	return nil
}

func (s *maintenanceService) canView(actor entity.Actor, record *entity.MaintenanceRequest) bool {
	if actor.Privileged() {
		return true
	}
	if record.UserID == actor.ID {
		return true
	}
	if actor.Role == entity.RoleMaintenance && record.AssignedTo != nil && *record.AssignedTo == actor.ID {
		return true
	}
	return false
}

func (s *maintenanceService) findRequest(ctx context.Context, requestID string) (*entity.MaintenanceRequest, error) {
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, fmt.Errorf("maintenance request ID %s: %w", requestID, ErrInvalidID)
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find maintenance request: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("maintenance request %s: %w", requestID, ErrNotFound)
	}

	return record, nil
}
