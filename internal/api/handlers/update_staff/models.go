package update_staff

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/service/staff/models"
)

// UpdateStaffRequest HTTP request model
type UpdateStaffRequest struct {
	Available *bool `json:"available,omitempty"`
	Verified  *bool `json:"verified,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStaffRequest) ToServiceRequest(actor models.Actor, staffID uuid.UUID) *models.UpdateStaffRequest {
	return &models.UpdateStaffRequest{
		Actor:     actor,
		StaffID:   staffID,
		Available: r.Available,
		Verified:  r.Verified,
	}
}
