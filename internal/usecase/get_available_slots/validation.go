package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if domain.DateOnly(requestDate).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, advanceBookingDays)
	if domain.DateOnly(requestDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// earliestStart возвращает самое раннее время начала на дату с учетом minNotice.
// ok=false, если на эту дату бронировать уже поздно.
func earliestStart(date time.Time, now time.Time, minNoticeMinutes int) (types.TimeString, bool) {
	if !domain.SameDay(date, now) {
		return "00:00", true
	}
	earliest, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if err != nil {
		return "", false
	}
	return earliest, true
}
