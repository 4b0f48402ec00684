package find_available_staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SpaBooking/internal/service/availability"
)

// UseCase use case поиска свободных мастеров на выбранный слот
type UseCase struct {
	resolver     StaffResolver
	catalogRepo  CatalogRepository
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resolver StaffResolver, catalogRepo CatalogRepository, policy domain.BookingPolicy, logger Logger) *UseCase {
	return &UseCase{
		resolver:     resolver,
		catalogRepo:  catalogRepo,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает мастеров, свободных на весь интервал, вместе с ценой за длительность
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.ServiceID == uuid.Nil || req.Date.IsZero() || req.StartTime.IsZero() || req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: serviceID, date, time and duration are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}
	if !uc.policy.IsCatalogSlot(req.StartTime) {
		return nil, ErrInvalidTime
	}

	// 2. Окно бронирования
	now := uc.policy.Now(uc.timeProvider.Now())
	date := domain.DateOnly(req.Date)
	if date.Before(domain.DateOnly(now)) {
		return nil, ErrInvalidDate
	}
	if uc.policy.HasAdvanceBookingLimit() && date.After(domain.DateOnly(now).AddDate(0, 0, uc.policy.AdvanceBookingDays)) {
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.policy.AdvanceBookingDays)
	}

	slot := domain.SlotRequest{Date: date, StartTime: req.StartTime, DurationMinutes: req.DurationMinutes}
	if domain.SameDay(date, now) {
		startsAt, err := slot.StartsAt(now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if startsAt.Before(now.Add(uc.minNotice())) {
			return nil, ErrTooLateToBook
		}
	}

	end, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}

	// 3. Услуга и цена
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("FindAvailableStaff: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
	}
	price, ok := service.PriceFor(req.DurationMinutes)
	if !ok {
		return nil, ErrInvalidDuration
	}

	// 4. Свободные мастера
	staff, err := uc.resolver.FindAvailableStaff(ctx, req.ServiceID, slot)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, availability.ErrInvalidDuration):
			return nil, ErrInvalidDuration
		case errors.Is(err, availability.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &Response{
		Service: service,
		Slot:    slot,
		EndTime: end,
		Price:   price,
		Staff:   staff,
	}, nil
}

func (uc *UseCase) minNotice() time.Duration {
	return time.Duration(uc.policy.MinNoticeMinutes) * time.Minute
}
