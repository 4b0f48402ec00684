package update_staff

import (
	"context"

	"github.com/m04kA/SMC-SpaBooking/internal/service/staff/models"
)

type StaffService interface {
	Update(ctx context.Context, req *models.UpdateStaffRequest) (*models.StaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
