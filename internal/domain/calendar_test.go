package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

func mustInterval(t *testing.T, start string, duration int) Interval {
	t.Helper()
	i, err := NewInterval(types.TimeString(start), duration, IntervalBooking)
	require.NoError(t, err)
	return i
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{"same slot", mustInterval(t, "14:00", 60), mustInterval(t, "14:00", 60), true},
		{"partial overlap", mustInterval(t, "14:00", 90), mustInterval(t, "15:00", 60), true},
		{"back to back", mustInterval(t, "14:00", 60), mustInterval(t, "15:00", 60), false},
		{"back to back reversed", mustInterval(t, "15:00", 60), mustInterval(t, "14:00", 60), false},
		{"contained", mustInterval(t, "12:00", 180), mustInterval(t, "13:00", 30), true},
		{"disjoint", mustInterval(t, "10:00", 60), mustInterval(t, "16:00", 60), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}
}

func TestNewInterval_Invalid(t *testing.T) {
	_, err := NewInterval("14:00", 0, IntervalBooking)
	assert.Error(t, err)

	_, err = NewInterval("25:00", 60, IntervalBooking)
	assert.Error(t, err)
}

func TestBuildCalendar(t *testing.T) {
	staffID := uuid.New()
	otherStaff := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	nextDay := date.AddDate(0, 0, 1)

	active := &Booking{ID: uuid.New(), StaffID: staffID, BookingDate: date, StartTime: "16:00", DurationMinutes: 60, Status: StatusConfirmed}
	cancelled := &Booking{ID: uuid.New(), StaffID: staffID, BookingDate: date, StartTime: "14:00", DurationMinutes: 60, Status: StatusCancelled}
	otherDay := &Booking{ID: uuid.New(), StaffID: staffID, BookingDate: nextDay, StartTime: "14:00", DurationMinutes: 60, Status: StatusPending}
	foreign := &Booking{ID: uuid.New(), StaffID: otherStaff, BookingDate: date, StartTime: "14:00", DurationMinutes: 60, Status: StatusPending}

	blocks := []BlockedSlot{
		{Date: date, StartTime: "11:00"},
		{Date: nextDay, StartTime: "14:00"},
	}

	cal := BuildCalendar(staffID, date, []*Booking{active, cancelled, otherDay, foreign}, blocks)

	require.Len(t, cal.Intervals, 2)
	assert.Equal(t, IntervalBlock, cal.Intervals[0].Kind)
	assert.Equal(t, 11*60, cal.Intervals[0].Start)
	assert.Equal(t, IntervalBooking, cal.Intervals[1].Kind)
	assert.Equal(t, active.ID, cal.Intervals[1].BookingID)
	assert.Len(t, cal.Bookings(), 1)

	// Слот отменённой записи свободен
	assert.False(t, cal.Conflicts(mustInterval(t, "14:00", 60)))
	assert.True(t, cal.Conflicts(mustInterval(t, "15:30", 60)))
	assert.True(t, cal.Conflicts(mustInterval(t, "11:00", 30)))
	assert.False(t, cal.Conflicts(mustInterval(t, "12:00", 60)))
}

func TestBuildCalendar_MalformedEntryReservesWholeDay(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bookings []*Booking
		blocks   []BlockedSlot
		kind     IntervalKind
	}{
		{
			name:     "booking with broken start time",
			bookings: []*Booking{{ID: uuid.New(), StaffID: staffID, BookingDate: date, StartTime: "9am", DurationMinutes: 60, Status: StatusPending}},
			kind:     IntervalBooking,
		},
		{
			name:     "booking with zero duration",
			bookings: []*Booking{{ID: uuid.New(), StaffID: staffID, BookingDate: date, StartTime: "14:00", Status: StatusConfirmed}},
			kind:     IntervalBooking,
		},
		{
			name:   "block with broken start time",
			blocks: []BlockedSlot{{Date: date, StartTime: "25:00"}},
			kind:   IntervalBlock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := BuildCalendar(staffID, date, tt.bookings, tt.blocks)

			require.Len(t, cal.Intervals, 1)
			assert.Equal(t, 0, cal.Intervals[0].Start)
			assert.Equal(t, MinutesPerDay, cal.Intervals[0].End)
			assert.Equal(t, tt.kind, cal.Intervals[0].Kind)
			for _, start := range []string{"00:00", "09:00", "14:00", "23:00"} {
				assert.True(t, cal.Conflicts(mustInterval(t, start, 60)), start)
			}
		})
	}
}

func TestBuildCalendar_MalformedBookingCanBeExcluded(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	broken := &Booking{ID: uuid.New(), StaffID: staffID, BookingDate: date, StartTime: "bad", DurationMinutes: 60, Status: StatusPending}

	cal := BuildCalendar(staffID, date, []*Booking{broken}, nil)
	require.Len(t, cal.Intervals, 1)
	assert.Equal(t, broken.ID, cal.Intervals[0].BookingID)
	assert.Empty(t, cal.Without(broken.ID).Intervals)
}

func TestCalendar_ScenarioFromBookingFlow(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	existing := &Booking{ID: uuid.New(), StaffID: staffID, BookingDate: date, StartTime: "14:00", DurationMinutes: 60, Status: StatusConfirmed}

	cal := BuildCalendar(staffID, date, []*Booking{existing}, nil)

	assert.True(t, cal.Conflicts(mustInterval(t, "14:00", 60)), "same slot")
	assert.True(t, cal.Conflicts(mustInterval(t, "13:00", 90)), "13:00-14:30")
	assert.False(t, cal.Conflicts(mustInterval(t, "15:00", 60)), "15:00-16:00")
	assert.False(t, cal.Conflicts(mustInterval(t, "13:00", 60)), "13:00-14:00")

	conflict, found := cal.FirstConflict(mustInterval(t, "14:30", 60))
	require.True(t, found)
	assert.Equal(t, existing.ID, conflict.BookingID)
}

func TestCalendar_Without(t *testing.T) {
	staffID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	self := &Booking{ID: uuid.New(), StaffID: staffID, BookingDate: date, StartTime: "14:00", DurationMinutes: 60, Status: StatusPending}

	cal := BuildCalendar(staffID, date, []*Booking{self}, []BlockedSlot{{Date: date, StartTime: "18:00"}})
	assert.True(t, cal.Conflicts(mustInterval(t, "14:00", 60)))

	trimmed := cal.Without(self.ID)
	assert.False(t, trimmed.Conflicts(mustInterval(t, "14:00", 60)))
	assert.True(t, trimmed.Conflicts(mustInterval(t, "18:00", 60)))
	assert.Len(t, cal.Intervals, 2, "original calendar is untouched")
}

func TestBookingPolicy_Catalog(t *testing.T) {
	policy := DefaultBookingPolicy()

	slots := policy.TimeSlots()
	require.Len(t, slots, 11)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("20:00"), slots[10])

	assert.True(t, policy.IsCatalogSlot("10:00"))
	assert.True(t, policy.IsCatalogSlot("20:00"))
	assert.False(t, policy.IsCatalogSlot("09:00"))
	assert.False(t, policy.IsCatalogSlot("21:00"))
	assert.False(t, policy.IsCatalogSlot("14:30"))
}

func TestSlotRequest_StartsAt(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	slot := SlotRequest{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartTime: "14:00", DurationMinutes: 60}
	startsAt, err := slot.StartsAt(loc)
	require.NoError(t, err)
	assert.Equal(t, 7, startsAt.UTC().Hour())
}
