package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// BlockDurationMinutes length of a manual block; blocks reserve one hour slot.
const BlockDurationMinutes = 60

// StaffMember is a therapist that travels to customers.
type StaffMember struct {
	ID           uuid.UUID
	Name         string
	Skills       []string
	Rating       float64
	ReviewCount  int
	Available    bool // global on/off switch, staff-controlled
	Verified     bool // admin-controlled visibility gate
	LocationBase string
	BlockedSlots []BlockedSlot // populated only for the dates a query asked for
}

// HasSkill reports whether the staff member can perform the skill.
func (s *StaffMember) HasSkill(skill string) bool {
	for _, sk := range s.Skills {
		if sk == skill {
			return true
		}
	}
	return false
}

// IsBookable reports whether the staff member may be offered to customers.
func (s *StaffMember) IsBookable() bool {
	return s.Available && s.Verified
}

// BlockedSlot is a staff-initiated reservation of one hour slot.
type BlockedSlot struct {
	Date      time.Time
	StartTime types.TimeString
}

// Interval returns the block's reserved span.
func (b BlockedSlot) Interval() (Interval, error) {
	return NewInterval(b.StartTime, BlockDurationMinutes, IntervalBlock)
}

// Key is the "YYYY-MM-DDTHH:MM" form of the slot.
func (b BlockedSlot) Key() string {
	return fmt.Sprintf("%sT%s", b.Date.Format(DateFormat), b.StartTime)
}

// StaffFilter filter for roster queries.
type StaffFilter struct {
	Skill         *string
	VerifiedOnly  bool
	AvailableOnly bool
}
