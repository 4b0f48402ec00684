package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SpaBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID       uuid.UUID      `json:"serviceId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableStaff int    `json:"availableStaff"`
	Bookable       bool   `json:"bookable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			AvailableStaff: slot.AvailableStaff,
			Bookable:       slot.Bookable,
		})
	}

	return &AvailableSlotsResponse{
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
