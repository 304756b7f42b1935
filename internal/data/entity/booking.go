package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// Live reports whether the status holds a claim on its time slot. Only live
// bookings participate in conflict checks.
func (s BookingStatus) Live() bool {
	return s == BookingStatusPending || s == BookingStatusApproved
}

// bookingTransitions is the allowed status graph. Rejected and completed are
// terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusApproved, BookingStatusRejected},
	BookingStatusApproved: {BookingStatusRejected, BookingStatusCompleted},
}

// CanTransitionTo reports whether the status change is in the transition graph.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	BaseSimple
	OwnerID      uuid.UUID     `db:"user_id"`
	ResourceType string        `db:"resource_type"`
	ResourceName string        `db:"resource_name"`
	StartTime    time.Time     `db:"start_time"`
	EndTime      time.Time     `db:"end_time"`
	Status       BookingStatus `db:"status"`
	Reason       *string       `db:"reason"`
}

// Overlaps is the canonical half-open interval intersection test for
// [aStart, aEnd) and [bStart, bEnd). Windows that only touch at a boundary do
// not overlap. Repository conflict queries implement this same strict rule.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsWindow reports whether the booking's window intersects [start, end).
func (b *Booking) OverlapsWindow(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}
