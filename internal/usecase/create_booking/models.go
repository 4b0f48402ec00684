package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID      uuid.UUID        // ID клиента (из заголовков авторизации)
	ServiceID       uuid.UUID        // ID услуги
	StaffID         uuid.UUID        // ID выбранного мастера
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "14:00")
	DurationMinutes int              // Длительность из вариантов услуги
	Addons          []string         // ID дополнений

	// ClientTotal сумма, которую показал клиент. Только для сверки, в запись не попадает.
	ClientTotal *decimal.Decimal

	CustomerName  string
	CustomerEmail *string
	CustomerPhone string
	Location      string
	Notes         *string
	PaymentMethod string // cash | transfer | card, по умолчанию cash
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking

	// PriceCorrected true, если ClientTotal не совпал с рассчитанной ценой
	PriceCorrected bool
}
