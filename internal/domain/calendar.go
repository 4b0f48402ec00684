package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// IntervalKind tells what reserves an interval.
type IntervalKind string

const (
	IntervalBooking IntervalKind = "booking"
	IntervalBlock   IntervalKind = "block"
)

// MinutesPerDay is the end of the day in minutes from midnight.
const MinutesPerDay = 24 * 60

// Interval is a half-open [Start, End) span in minutes from midnight.
type Interval struct {
	Start     int
	End       int
	Kind      IntervalKind
	BookingID uuid.UUID // zero for blocks
}

// NewInterval builds an interval from a slot start and a duration.
func NewInterval(start types.TimeString, durationMinutes int, kind IntervalKind) (Interval, error) {
	if durationMinutes <= 0 {
		return Interval{}, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	startMinutes, err := start.Minutes()
	if err != nil {
		return Interval{}, err
	}
	return Interval{
		Start: startMinutes,
		End:   startMinutes + durationMinutes,
		Kind:  kind,
	}, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Back-to-back intervals (one ends exactly where the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Calendar is one staff member's committed time on one day.
// Intervals are ordered by start.
type Calendar struct {
	StaffID   uuid.UUID
	Date      time.Time
	Intervals []Interval
}

// BuildCalendar projects the staff member's non-terminal bookings and manual
// blocks for the given date into an ordered list of intervals. Bookings of
// other staff, other dates or in terminal status are ignored. An entry that
// cannot be converted (malformed time or duration) reserves the whole day.
func BuildCalendar(staffID uuid.UUID, date time.Time, bookings []*Booking, blocks []BlockedSlot) *Calendar {
	cal := &Calendar{
		StaffID:   staffID,
		Date:      DateOnly(date),
		Intervals: make([]Interval, 0, len(bookings)+len(blocks)),
	}

	for _, b := range bookings {
		if b == nil || b.StaffID != staffID || b.IsTerminal() || !SameDay(b.BookingDate, date) {
			continue
		}
		interval, err := b.Interval()
		if err != nil {
			interval = wholeDay(IntervalBooking)
		}
		interval.BookingID = b.ID
		cal.Intervals = append(cal.Intervals, interval)
	}

	for _, block := range blocks {
		if !SameDay(block.Date, date) {
			continue
		}
		interval, err := block.Interval()
		if err != nil {
			interval = wholeDay(IntervalBlock)
		}
		cal.Intervals = append(cal.Intervals, interval)
	}

	sort.SliceStable(cal.Intervals, func(a, b int) bool {
		return cal.Intervals[a].Start < cal.Intervals[b].Start
	})

	return cal
}

func wholeDay(kind IntervalKind) Interval {
	return Interval{Start: 0, End: MinutesPerDay, Kind: kind}
}

// Conflicts reports whether the candidate intersects any reserved interval.
func (c *Calendar) Conflicts(candidate Interval) bool {
	_, found := c.FirstConflict(candidate)
	return found
}

// FirstConflict returns the first reserved interval the candidate intersects.
func (c *Calendar) FirstConflict(candidate Interval) (Interval, bool) {
	for _, reserved := range c.Intervals {
		if reserved.Overlaps(candidate) {
			return reserved, true
		}
	}
	return Interval{}, false
}

// Without returns a copy of the calendar without the given booking's interval.
// Used when re-validating a booking against everything except itself.
func (c *Calendar) Without(bookingID uuid.UUID) *Calendar {
	out := &Calendar{
		StaffID:   c.StaffID,
		Date:      c.Date,
		Intervals: make([]Interval, 0, len(c.Intervals)),
	}
	for _, interval := range c.Intervals {
		if interval.Kind == IntervalBooking && interval.BookingID == bookingID {
			continue
		}
		out.Intervals = append(out.Intervals, interval)
	}
	return out
}

// Bookings returns only the booking intervals.
func (c *Calendar) Bookings() []Interval {
	out := make([]Interval, 0, len(c.Intervals))
	for _, interval := range c.Intervals {
		if interval.Kind == IntervalBooking {
			out = append(out, interval)
		}
	}
	return out
}

// DateOnly truncates a time to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether both times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
