package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	if len(req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	if len(req.Addons) > domain.MaxAddons {
		return fmt.Errorf("%w: too many add-ons", ErrInvalidInput)
	}

	if req.PaymentMethod != "" && !domain.PaymentMethod(req.PaymentMethod).IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, advanceBookingDays)
	if domain.DateOnly(bookingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что бронирование не нарушает minNoticeMinutes
func validateBookingTime(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !domain.SameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимальное время уже за полночью: сегодня бронировать поздно
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// validateEndsSameDay проверяет, что процедура заканчивается до полуночи
func validateEndsSameDay(startTime types.TimeString, durationMinutes int) error {
	if _, err := startTime.AddMinutes(durationMinutes); err != nil {
		return fmt.Errorf("%w: %s+%dm runs past midnight", ErrInvalidDuration, startTime, durationMinutes)
	}
	return nil
}

// resolveAddons проверяет дополнения и возвращает их в порядке запроса
func resolveAddons(ids []string, found map[string]*domain.Addon, category domain.ServiceCategory) ([]*domain.Addon, error) {
	addons := make([]*domain.Addon, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate add-on %q", ErrInvalidAddon, id)
		}
		seen[id] = struct{}{}

		addon, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown add-on %q", ErrInvalidAddon, id)
		}
		if !addon.ValidForCategory(category) {
			return nil, fmt.Errorf("%w: add-on %q is not available for %s", ErrInvalidAddon, id, category)
		}
		addons = append(addons, addon)
	}
	return addons, nil
}

// calculateTotal цена услуги за длительность плюс дополнения
func calculateTotal(base decimal.Decimal, addons []*domain.Addon) decimal.Decimal {
	total := base
	for _, addon := range addons {
		total = total.Add(addon.Price)
	}
	return total
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}
