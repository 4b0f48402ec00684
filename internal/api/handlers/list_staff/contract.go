package list_staff

import (
	"context"

	"github.com/m04kA/SMC-SpaBooking/internal/service/staff/models"
)

type StaffService interface {
	List(ctx context.Context, req *models.ListStaffRequest) (*models.StaffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
