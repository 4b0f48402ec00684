package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Request модель запроса сетки слотов на день
type Request struct {
	ServiceID       uuid.UUID // ID услуги
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Длительность из вариантов услуги
}

// Response модель ответа с сеткой слотов
type Response struct {
	Date            time.Time
	ServiceID       uuid.UUID
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	EndTime        types.TimeString
	AvailableStaff int  // Сколько мастеров свободно
	Bookable       bool // false, если слот в прошлом, внутри minNotice или никого нет
}
