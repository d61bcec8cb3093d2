package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Overlaps_HalfOpenSemantics(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// A = [10:00, 12:00)
	a := &Booking{StartTime: at(10, 0), EndTime: at(12, 0), Status: StatusConfirmed}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"touching after", at(12, 0), at(14, 0), false},
		{"touching before", at(8, 0), at(10, 0), false},
		{"one minute overlap", at(11, 59), at(14, 0), true},
		{"contained", at(10, 30), at(11, 0), true},
		{"containing", at(9, 0), at(13, 0), true},
		{"identical", at(10, 0), at(12, 0), true},
		{"disjoint", at(14, 0), at(15, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Overlaps(tc.start, tc.end))
		})
	}
}

func TestBooking_IsBlocking(t *testing.T) {
	blocking := []BookingStatus{StatusPending, StatusPendingApproval, StatusConfirmed}
	for _, st := range blocking {
		b := &Booking{Status: st}
		assert.True(t, b.IsBlocking(), "status %s", st)
	}

	// Отмененные и просроченные никогда не блокируют слот
	for _, st := range []BookingStatus{StatusCancelled, StatusExpired} {
		b := &Booking{Status: st}
		assert.False(t, b.IsBlocking(), "status %s", st)
	}
}

func TestBooking_ActivityWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	active := &Booking{Status: StatusConfirmed, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)}
	assert.True(t, active.IsActiveAt(now))
	assert.False(t, active.IsUpcomingAt(now))

	upcoming := &Booking{Status: StatusConfirmed, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)}
	assert.False(t, upcoming.IsActiveAt(now))
	assert.True(t, upcoming.IsUpcomingAt(now))

	finished := &Booking{Status: StatusConfirmed, StartTime: now.Add(-2 * time.Hour), EndTime: now}
	assert.False(t, finished.IsActiveAt(now))
	assert.False(t, finished.IsUpcomingAt(now))
}

func TestCeilHours(t *testing.T) {
	assert.Equal(t, 0, CeilHours(0))
	assert.Equal(t, 0, CeilHours(-time.Hour))
	assert.Equal(t, 1, CeilHours(time.Minute))
	assert.Equal(t, 1, CeilHours(time.Hour))
	assert.Equal(t, 2, CeilHours(time.Hour+time.Second))
	assert.Equal(t, 2, CeilHours(2*time.Hour))
}
