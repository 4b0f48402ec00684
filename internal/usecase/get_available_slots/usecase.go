package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/service/availability"
)

// UseCase use case для получения сетки слотов на день
type UseCase struct {
	resolver     StaffResolver
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resolver StaffResolver, policy domain.BookingPolicy, logger Logger) *UseCase {
	return &UseCase{
		resolver:     resolver,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает все слоты сетки на дату с числом свободных мастеров.
// Результат только для отображения: при создании записи слот проверяется заново.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s, duration=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в зоне обслуживания
	now := uc.policy.Now(uc.timeProvider.Now())

	// 3. Валидация даты
	if err := validateDate(req.Date, now, uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	earliest, open := earliestStart(req.Date, now, uc.policy.MinNoticeMinutes)

	// 4. Для каждого слота сетки считаем свободных мастеров
	date := domain.DateOnly(req.Date)
	catalog := uc.policy.TimeSlots()
	slots := make([]Slot, 0, len(catalog))
	for _, start := range catalog {
		end, err := start.AddMinutes(req.DurationMinutes)
		if err != nil {
			// Интервал уходит за полночь
			continue
		}

		slot := Slot{StartTime: start, EndTime: end}
		if !open || start.IsBefore(earliest) {
			slots = append(slots, slot)
			continue
		}

		staff, err := uc.resolver.FindAvailableStaff(ctx, req.ServiceID, domain.SlotRequest{
			Date:            date,
			StartTime:       start,
			DurationMinutes: req.DurationMinutes,
		})
		if err != nil {
			return nil, uc.mapResolverError(err)
		}

		slot.AvailableStaff = len(staff)
		slot.Bookable = len(staff) > 0
		slots = append(slots, slot)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%s, date=%s",
		len(slots), req.ServiceID, date.Format(domain.DateFormat))

	return &Response{
		Date:            date,
		ServiceID:       req.ServiceID,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) mapResolverError(err error) error {
	switch {
	case errors.Is(err, availability.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, availability.ErrInvalidDuration):
		return ErrInvalidDuration
	case errors.Is(err, availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	uc.logger.Error("GetAvailableSlots: resolver failed: %v", err)
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
