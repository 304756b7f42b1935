package usecase

import (
	"errors"
	"fmt"

	"campus-resources/internal/data/entity"
)

// Sentinel errors surfaced to the HTTP layer. Handlers translate them with
// errors.Is / errors.As instead of matching message text.
var (
	// ErrInvalidWindow means the requested time window is malformed
	// (start >= end, or a zero-length window).
	ErrInvalidWindow = errors.New("start time must be before end time")

	// ErrInvalidID means a path or body parameter is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid ID format")

	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the actor lacks rights for the requested operation.
	ErrForbidden = errors.New("access denied")

	// ErrInvalidTransition means the requested status change is not in the
	// booking transition graph.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmailTaken means the registration email already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ConflictError reports that a window collides with live bookings on the same
// resource. Conflicts always carries at least one booking.
type ConflictError struct {
	ResourceName string
	Conflicts    []*entity.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot on %s overlaps %d existing booking(s)", e.ResourceName, len(e.Conflicts))
}
