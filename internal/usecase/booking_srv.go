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

// BookingService is the booking lifecycle controller. Every operation takes
// the acting principal explicitly; authorization is decided here, not in the
// HTTP layer.
type BookingService interface {
	Create(ctx context.Context, actor entity.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Get(ctx context.Context, actor entity.Actor, bookingID string) (*response.BookingResponse, error)
	List(ctx context.Context, actor entity.Actor) ([]*response.BookingResponse, error)
	ListPublic(ctx context.Context) ([]response.BookingSummary, error)
	Update(ctx context.Context, actor entity.Actor, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	SetStatus(ctx context.Context, actor entity.Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	Delete(ctx context.Context, actor entity.Actor, bookingID string) error
	CheckAvailability(ctx context.Context, resourceName string, start, end time.Time) (*response.AvailabilityResponse, error)
}

type bookingService struct {
	repo  *repository.Repository
	locks *resourceLocks
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		locks: newResourceLocks(),
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, actor entity.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if actor.Anonymous() {
		return nil, fmt.Errorf("create booking: %w", ErrForbidden)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("booking window [%s, %s): %w",
			req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339), ErrInvalidWindow)
	}

	// Owner defaults to the actor. A privileged actor may book on behalf of
	// another user; for anyone else the field is ignored.
	ownerID := actor.ID
	if req.OnBehalfOfUserID != nil && actor.Privileged() {
		target, err := uuid.Parse(*req.OnBehalfOfUserID)
		if err != nil {
			return nil, fmt.Errorf("on-behalf-of user ID %s: %w", *req.OnBehalfOfUserID, ErrInvalidID)
		}
		user, err := s.repo.User.FindByID(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("check on-behalf-of user: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("user %s: %w", target.String(), ErrNotFound)
		}
		ownerID = target
	}

	// The conflict check and the insert must see a stable live set for this
	// resource, otherwise two concurrent creates could both pass the check.
	release := s.locks.acquire(req.ResourceName)
	defer release()

	conflicts, err := s.repo.Booking.FindConflicts(ctx, req.ResourceName, req.StartTime, req.EndTime, nil)
	if err != nil {
		s.log.Error("Failed to check conflicts", zap.Error(err), zap.String("resource_name", req.ResourceName))
		return nil, fmt.Errorf("check conflicts: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{ResourceName: req.ResourceName, Conflicts: conflicts}
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		OwnerID:      ownerID,
		ResourceType: req.ResourceType,
		ResourceName: req.ResourceName,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       entity.BookingStatusPending,
		Reason:       req.Reason,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("resource_name", req.ResourceName),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("resource_name", booking.ResourceName),
		zap.String("owner_id", ownerID.String()),
		zap.Time("start", booking.StartTime),
		zap.Time("end", booking.EndTime),
	)

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) Get(ctx context.Context, actor entity.Actor, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.Privileged() && booking.OwnerID != actor.ID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrForbidden)
	}

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) List(ctx context.Context, actor entity.Actor) ([]*response.BookingResponse, error) {
	var bookings []*entity.Booking
	var err error

	if actor.Privileged() {
		bookings, err = s.repo.Booking.FindAll(ctx)
	} else {
		bookings, err = s.repo.Booking.FindByOwnerID(ctx, actor.ID)
	}
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("actor_id", actor.ID.String()))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	responses := make([]*response.BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = response.BookingToResponse(b)
	}
	return responses, nil
}

// ListPublic serves anonymous callers: approved bookings only, reduced to the
// fields needed for a busy view.
func (s *bookingService) ListPublic(ctx context.Context) ([]response.BookingSummary, error) {
	bookings, err := s.repo.Booking.FindByStatus(ctx, entity.BookingStatusApproved)
	if err != nil {
		s.log.Error("Failed to list approved bookings", zap.Error(err))
		return nil, fmt.Errorf("list approved bookings: %w", err)
	}

	summaries := make([]response.BookingSummary, len(bookings))
	for i, b := range bookings {
		summaries[i] = response.BookingToSummary(b)
	}
	return summaries, nil
}

func (s *bookingService) Update(ctx context.Context, actor entity.Actor, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.Privileged() && booking.OwnerID != actor.ID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrForbidden)
	}

	// Once approved, the requester has no claim to reshape the slot; only a
	// privileged actor may edit, subject to the conflict re-check below.
	if booking.Status == entity.BookingStatusApproved && !actor.Privileged() {
		return nil, fmt.Errorf("approved bookings cannot be edited by requester: %w", ErrForbidden)
	}

	updated := *booking
	if req.ResourceType != nil {
		updated.ResourceType = *req.ResourceType
	}
	if req.ResourceName != nil {
		if *req.ResourceName == "" {
			return nil, fmt.Errorf("resource name cannot be empty: %w", ErrInvalidWindow)
		}
		updated.ResourceName = *req.ResourceName
	}
	if req.StartTime != nil {
		updated.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		updated.EndTime = *req.EndTime
	}
	if req.Reason != nil {
		updated.Reason = req.Reason
	}

	if !updated.StartTime.Before(updated.EndTime) {
		return nil, fmt.Errorf("booking window [%s, %s): %w",
			updated.StartTime.Format(time.RFC3339), updated.EndTime.Format(time.RFC3339), ErrInvalidWindow)
	}

	// Conflicts are re-checked only when the resulting window or resource
	// changed; a plain reason edit never fails on availability.
	windowChanged := updated.ResourceName != booking.ResourceName ||
		!updated.StartTime.Equal(booking.StartTime) ||
		!updated.EndTime.Equal(booking.EndTime)

	if windowChanged {
		release := s.locks.acquire(updated.ResourceName)
		defer release()

		conflicts, err := s.repo.Booking.FindConflicts(ctx, updated.ResourceName, updated.StartTime, updated.EndTime, &booking.ID)
		if err != nil {
			s.log.Error("Failed to check conflicts", zap.Error(err), zap.String("resource_name", updated.ResourceName))
			return nil, fmt.Errorf("check conflicts: %w", err)
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{ResourceName: updated.ResourceName, Conflicts: conflicts}
		}
	}

	if err := s.repo.Booking.Update(ctx, &updated); err != nil {
		s.log.Error("Failed to update booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.log.Info("Booking updated",
		zap.String("booking_id", bookingID),
		zap.String("resource_name", updated.ResourceName),
		zap.Bool("window_changed", windowChanged),
	)

	return response.BookingToResponse(&updated), nil
}

func (s *bookingService) SetStatus(ctx context.Context, actor entity.Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if !actor.Privileged() {
		return nil, fmt.Errorf("status changes require admin or staff role: %w", ErrForbidden)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	newStatus := entity.BookingStatus(req.Status)
	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%s -> %s: %w", booking.Status, newStatus, ErrInvalidTransition)
	}

	// Approval admits the booking into the live-approved set, so the slot is
	// re-validated: another booking may have been approved since creation.
	if newStatus == entity.BookingStatusApproved {
		release := s.locks.acquire(booking.ResourceName)
		defer release()

		conflicts, err := s.repo.Booking.FindConflicts(ctx, booking.ResourceName, booking.StartTime, booking.EndTime, &booking.ID)
		if err != nil {
			s.log.Error("Failed to check conflicts at approval", zap.Error(err), zap.String("booking_id", bookingID))
			return nil, fmt.Errorf("check conflicts: %w", err)
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{ResourceName: booking.ResourceName, Conflicts: conflicts}
		}
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, newStatus); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", string(newStatus)),
		)
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(newStatus)),
		zap.String("actor_id", actor.ID.String()),
	)

	booking.Status = newStatus
	return response.BookingToResponse(booking), nil
}

func (s *bookingService) Delete(ctx context.Context, actor entity.Actor, bookingID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !actor.Privileged() && booking.OwnerID != actor.ID {
		return fmt.Errorf("booking %s: %w", bookingID, ErrForbidden)
	}

	// An approved booking is a commitment; the owner alone cannot walk away
	// from it.
	if booking.Status == entity.BookingStatusApproved && !actor.Privileged() {
		return fmt.Errorf("approved bookings can only be deleted by admin or staff: %w", ErrForbidden)
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		s.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("delete booking: %w", err)
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", bookingID),
		zap.String("resource_name", booking.ResourceName),
		zap.String("actor_id", actor.ID.String()),
	)

	return nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, resourceName string, start, end time.Time) (*response.AvailabilityResponse, error) {
	if resourceName == "" {
		return nil, fmt.Errorf("resource name is required: %w", ErrInvalidWindow)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("availability window [%s, %s): %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), ErrInvalidWindow)
	}

	conflicts, err := s.repo.Booking.FindConflicts(ctx, resourceName, start, end, nil)
	if err != nil {
		s.log.Error("Failed to check availability", zap.Error(err), zap.String("resource_name", resourceName))
		return nil, fmt.Errorf("check availability: %w", err)
	}

	return &response.AvailabilityResponse{
		ResourceName: resourceName,
		StartTime:    start,
		EndTime:      end,
		Available:    len(conflicts) == 0,
		Busy:         response.BookingsToConflictSummaries(conflicts),
	}, nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking ID %s: %w", bookingID, ErrInvalidID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	return booking, nil
}
