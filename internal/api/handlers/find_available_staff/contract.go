package find_available_staff

import (
	"context"

	findAvailableStaff "github.com/m04kA/SMC-SpaBooking/internal/usecase/find_available_staff"
)

type FindAvailableStaffUseCase interface {
	Execute(ctx context.Context, req *findAvailableStaff.Request) (*findAvailableStaff.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
