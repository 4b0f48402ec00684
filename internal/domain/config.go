package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// BookingPolicy holds the slot catalog and the booking window rules.
type BookingPolicy struct {
	FirstSlotHour      int
	LastSlotHour       int
	AdvanceBookingDays int // 0 = unlimited
	MinNoticeMinutes   int
	Location           *time.Location // used only to compute "today" and "now"
}

// DefaultBookingPolicy returns the policy used when nothing is configured.
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		FirstSlotHour:      DefaultFirstSlotHour,
		LastSlotHour:       DefaultLastSlotHour,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
		MinNoticeMinutes:   DefaultMinNoticeMinutes,
		Location:           time.UTC,
	}
}

// TimeSlots returns the catalog of hour-aligned start times.
func (p BookingPolicy) TimeSlots() []types.TimeString {
	slots := make([]types.TimeString, 0, p.LastSlotHour-p.FirstSlotHour+1)
	for h := p.FirstSlotHour; h <= p.LastSlotHour; h++ {
		slot, err := types.NewTimeStringFromMinutes(h * 60)
		if err != nil {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// IsCatalogSlot reports whether the time is an hour-aligned slot inside the catalog.
func (p BookingPolicy) IsCatalogSlot(t types.TimeString) bool {
	if !t.IsHourAligned() {
		return false
	}
	hour, err := t.Hour()
	if err != nil {
		return false
	}
	return hour >= p.FirstSlotHour && hour <= p.LastSlotHour
}

// HasAdvanceBookingLimit returns true if there's a limit on how far ahead bookings can be made.
func (p BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// Now returns the current time in the service area.
func (p BookingPolicy) Now(now time.Time) time.Time {
	if p.Location == nil {
		return now
	}
	return now.In(p.Location)
}
