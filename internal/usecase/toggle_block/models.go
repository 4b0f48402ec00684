package toggle_block

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Request модель запроса на блокировку или разблокировку слота
type Request struct {
	StaffID   uuid.UUID // мастер из пути запроса
	ActorID   uuid.UUID // из заголовков авторизации
	ActorRole domain.Role
	Date      time.Time
	StartTime types.TimeString
	Blocked   bool
}

// Response модель ответа
type Response struct {
	Slot    domain.BlockedSlot
	Blocked bool
	Changed bool // false, если слот уже был в запрошенном состоянии
}
