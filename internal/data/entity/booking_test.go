package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical windows", at(0), at(2), at(0), at(2), true},
		{"partial overlap", at(0), at(2), at(1), at(3), true},
		{"contained window", at(0), at(4), at(1), at(2), true},
		{"touching at boundary", at(0), at(2), at(2), at(4), false},
		{"touching at boundary reversed", at(2), at(4), at(0), at(2), false},
		{"disjoint", at(0), at(1), at(3), at(4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// intersection is symmetric
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestBookingOverlapsWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: start, EndTime: start.Add(2 * time.Hour)}

	assert.True(t, b.OverlapsWindow(start.Add(time.Hour), start.Add(3*time.Hour)))
	assert.False(t, b.OverlapsWindow(start.Add(2*time.Hour), start.Add(3*time.Hour)))
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusApproved))
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusRejected))
	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusPending))

	assert.True(t, BookingStatusApproved.CanTransitionTo(BookingStatusRejected))
	assert.True(t, BookingStatusApproved.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusApproved.CanTransitionTo(BookingStatusPending))

	// terminal states have no exits
	for _, next := range []BookingStatus{BookingStatusPending, BookingStatusApproved, BookingStatusRejected, BookingStatusCompleted} {
		assert.False(t, BookingStatusRejected.CanTransitionTo(next))
		assert.False(t, BookingStatusCompleted.CanTransitionTo(next))
	}
}

func TestBookingStatusLive(t *testing.T) {
	assert.True(t, BookingStatusPending.Live())
	assert.True(t, BookingStatusApproved.Live())
	assert.False(t, BookingStatusRejected.Live())
	assert.False(t, BookingStatusCompleted.Live())
}
