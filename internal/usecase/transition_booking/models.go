package transition_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID uuid.UUID
	Action    string
	ActorID   uuid.UUID   // из заголовков авторизации, для system может быть пустым
	ActorRole domain.Role // customer | staff | admin | system
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking

	// Noop true для повторной отмены уже отмененного бронирования
	Noop bool
}
