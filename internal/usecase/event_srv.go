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

// EventService manages campus events. Events carry a time window but no
// exclusivity key, so there is no conflict logic here.
type EventService interface {
	Create(ctx context.Context, actor entity.Actor, req *request.CreateEventRequest) (*response.EventResponse, error)
	Get(ctx context.Context, eventID string) (*response.EventResponse, error)
	List(ctx context.Context) ([]*response.EventResponse, error)
	Update(ctx context.Context, actor entity.Actor, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error)
	Delete(ctx context.Context, actor entity.Actor, eventID string) error
}

type eventService struct {
	repo repository.EventRepository
	log  *zap.Logger
}

func NewEventService(repo repository.EventRepository, log *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		log:  log.With(zap.String("service", "event")),
	}
}

func (s *eventService) Create(ctx context.Context, actor entity.Actor, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if actor.Anonymous() {
		return nil, fmt.Errorf("create event: %w", ErrForbidden)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("event window [%s, %s): %w",
			req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), ErrInvalidWindow)
	}

	event := &entity.Event{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		OrganizerID: actor.ID,
		Category:    req.Category,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("title", event.Title),
		zap.String("organizer_id", actor.ID.String()),
	)

	return response.EventToResponse(event), nil
}

func (s *eventService) Get(ctx context.Context, eventID string) (*response.EventResponse, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return response.EventToResponse(event), nil
}

func (s *eventService) List(ctx context.Context) ([]*response.EventResponse, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("list events: %w", err)
	}

	responses := make([]*response.EventResponse, len(events))
	for i, event := range events {
		responses[i] = response.EventToResponse(event)
	}
	return responses, nil
}

func (s *eventService) Update(ctx context.Context, actor entity.Actor, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if actor.Role != entity.RoleAdmin && event.OrganizerID != actor.ID {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrForbidden)
	}

	updated := *event
	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("title cannot be empty")
		}
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = req.Description
	}
	if req.Location != nil {
		updated.Location = req.Location
	}
	if req.StartTime != nil {
		updated.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		updated.EndTime = *req.EndTime
	}
	if req.Category != nil {
		updated.Category = req.Category
	}

	if !updated.StartTime.Before(updated.EndTime) {
		return nil, fmt.Errorf("event window [%s, %s): %w",
			updated.StartTime.Format(time.RFC3339), updated.EndTime.Format(time.RFC3339), ErrInvalidWindow)
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.log.Error("Failed to update event", zap.Error(err), zap.String("event_id", eventID))
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.log.Info("Event updated", zap.String("event_id", eventID))

	return response.EventToResponse(&updated), nil
}

func (s *eventService) Delete(ctx context.Context, actor entity.Actor, eventID string) error {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if actor.Role != entity.RoleAdmin && event.OrganizerID != actor.ID {
		return fmt.Errorf("event %s: %w", eventID, ErrForbidden)
	}

	if err := s.repo.Delete(ctx, event.ID); err != nil {
		s.log.Error("Failed to delete event", zap.Error(err), zap.String("event_id", eventID))
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.Info("Event deleted", zap.String("event_id", eventID), zap.String("actor_id", actor.ID.String()))
	return nil
}

func (s *eventService) findEvent(ctx context.Context, eventID string) (*entity.Event, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("event ID %s: %w", eventID, ErrInvalidID)
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}

	return event, nil
}
