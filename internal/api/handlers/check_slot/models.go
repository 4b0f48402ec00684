package check_slot

import "github.com/google/uuid"

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	StaffID         uuid.UUID `json:"staffId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Available       bool      `json:"available"`
}
