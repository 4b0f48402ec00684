package find_available_staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Request модель запроса свободных мастеров
type Request struct {
	ServiceID       uuid.UUID
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// Response свободные мастера, отсортированные по рейтингу.
// Пустой список - нормальный ответ.
type Response struct {
	Service *domain.Service
	Slot    domain.SlotRequest
	EndTime types.TimeString
	Price   decimal.Decimal
	Staff   []*domain.StaffMember
}
