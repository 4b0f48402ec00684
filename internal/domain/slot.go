package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// SlotRequest is a candidate reservation: a date, a start time and a duration.
type SlotRequest struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// Interval returns the candidate span as a booking interval.
func (s SlotRequest) Interval() (Interval, error) {
	return NewInterval(s.StartTime, s.DurationMinutes, IntervalBooking)
}

// StartsAt returns the absolute start moment of the slot in the given location.
func (s SlotRequest) StartsAt(loc *time.Location) (time.Time, error) {
	minutes, err := s.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := s.Date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// AvailableStaff is one entry of a resolver answer.
type AvailableStaff struct {
	Staff *StaffMember
	Slot  SlotRequest
}
