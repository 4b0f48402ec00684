package find_available_staff

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	staffModels "github.com/m04kA/SMC-SpaBooking/internal/service/staff/models"
	findAvailableStaff "github.com/m04kA/SMC-SpaBooking/internal/usecase/find_available_staff"
)

// AvailableStaffResponse HTTP response model
type AvailableStaffResponse struct {
	ServiceID       uuid.UUID                   `json:"serviceId"`
	Date            string                      `json:"date"`
	StartTime       string                      `json:"startTime"`
	EndTime         string                      `json:"endTime"`
	DurationMinutes int                         `json:"durationMinutes"`
	Price           decimal.Decimal             `json:"price"`
	Staff           []staffModels.StaffResponse `json:"staff"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *findAvailableStaff.Response) *AvailableStaffResponse {
	return &AvailableStaffResponse{
		ServiceID:       resp.Service.ID,
		Date:            resp.Slot.Date.Format(domain.DateFormat),
		StartTime:       resp.Slot.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.Slot.DurationMinutes,
		Price:           resp.Price,
		Staff:           staffModels.FromDomainStaffList(resp.Staff).Staff,
	}
}
