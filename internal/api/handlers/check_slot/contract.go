package check_slot

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// SlotChecker проверка интервала одного мастера
type SlotChecker interface {
	IsSlotAvailable(ctx context.Context, staffID uuid.UUID, slot domain.SlotRequest, excludeBookingID *uuid.UUID) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
