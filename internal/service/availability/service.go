package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/catalog"
	staffRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/staff"
)

// Resolver отвечает на вопрос "кто из мастеров свободен в этот интервал"
type Resolver struct {
	staffRepo   StaffRepository
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	cache       Cache
	logger      Logger
}

// NewResolver создает новый экземпляр резолвера
func NewResolver(
	staffRepo StaffRepository,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	cache Cache,
	logger Logger,
) *Resolver {
	return &Resolver{
		staffRepo:   staffRepo,
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		logger:      logger,
	}
}

// FindAvailableStaff возвращает мастеров, которые умеют выполнять услугу, включены, верифицированы
// и свободны в запрошенный интервал. Лучшие по рейтингу первыми.
// Пустой список - нормальный ответ, а не ошибка.
// Результат может быть взят из кэша: он только для отображения.
func (r *Resolver) FindAvailableStaff(ctx context.Context, serviceID uuid.UUID, slot domain.SlotRequest) ([]*domain.StaffMember, error) {
	r.logger.Info("FindAvailableStaff: service=%s, date=%s, time=%s, duration=%d",
		serviceID, slot.Date.Format(domain.DateFormat), slot.StartTime, slot.DurationMinutes)

	// 1. Получаем услугу и проверяем длительность
	service, err := r.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			r.logger.Warn("FindAvailableStaff: service id=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		r.logger.Error("FindAvailableStaff: failed to get service id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: FindAvailableStaff - get service: %v", ErrStoreUnavailable, err)
	}
	if _, ok := service.PriceFor(slot.DurationMinutes); !ok {
		r.logger.Warn("FindAvailableStaff: duration=%d not offered by service id=%s", slot.DurationMinutes, serviceID)
		return nil, ErrInvalidDuration
	}

	candidate, err := slot.Interval()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Пробуем кэш
	cacheKey := fmt.Sprintf("%s:%s:%s:%d", service.ID, service.RequiredSkill, slot.StartTime, slot.DurationMinutes)
	cached, version, found, err := r.cache.GetStaff(ctx, slot.Date, cacheKey)
	if err != nil {
		r.logger.Warn("FindAvailableStaff: cache read failed: %v", err)
	} else if found {
		r.logger.Info("FindAvailableStaff: cache hit, %d staff", len(cached))
		return cached, nil
	}

	// 3. Мастера с нужным навыком, включенные и верифицированные
	skill := service.RequiredSkill
	roster, err := r.staffRepo.List(ctx, domain.StaffFilter{
		Skill:         &skill,
		VerifiedOnly:  true,
		AvailableOnly: true,
	})
	if err != nil {
		r.logger.Error("FindAvailableStaff: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: FindAvailableStaff - list staff: %v", ErrStoreUnavailable, err)
	}

	qualified := make([]*domain.StaffMember, 0, len(roster))
	for _, member := range roster {
		if member.HasSkill(skill) && member.IsBookable() {
			qualified = append(qualified, member)
		}
	}

	// 4. Календари на дату и проверка пересечений
	available := make([]*domain.StaffMember, 0, len(qualified))
	if len(qualified) > 0 {
		calendars, err := r.loadCalendars(ctx, qualified, slot)
		if err != nil {
			r.logger.Error("FindAvailableStaff: failed to load calendars: %v", err)
			return nil, err
		}
		for _, member := range qualified {
			if calendars[member.ID].Conflicts(candidate) {
				continue
			}
			available = append(available, member)
		}
	}

	// 5. Сортировка: рейтинг, затем количество отзывов
	sort.SliceStable(available, func(i, j int) bool {
		if available[i].Rating != available[j].Rating {
			return available[i].Rating > available[j].Rating
		}
		return available[i].ReviewCount > available[j].ReviewCount
	})

	// Пишем под версией, прочитанной до загрузки календарей
	if version != "" {
		if err := r.cache.SetStaff(ctx, slot.Date, version, cacheKey, available); err != nil {
			r.logger.Warn("FindAvailableStaff: cache write failed: %v", err)
		}
	}

	r.logger.Info("FindAvailableStaff: %d of %d qualified staff are free", len(available), len(qualified))
	return available, nil
}

// IsSlotAvailable проверяет, что интервал не пересекается ни с активной записью, ни с ручной блокировкой мастера.
// Всегда читает хранилище напрямую, кэш не используется.
// excludeBookingID исключает запись из проверки (повторная проверка при подтверждении).
func (r *Resolver) IsSlotAvailable(ctx context.Context, staffID uuid.UUID, slot domain.SlotRequest, excludeBookingID *uuid.UUID) (bool, error) {
	candidate, err := slot.Interval()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	calendar, err := r.Calendar(ctx, staffID, slot)
	if err != nil {
		return false, err
	}
	if excludeBookingID != nil {
		calendar = calendar.Without(*excludeBookingID)
	}

	if conflict, found := calendar.FirstConflict(candidate); found {
		r.logger.Info("IsSlotAvailable: staff=%s date=%s %s+%dm conflicts with %s [%d,%d)",
			staffID, slot.Date.Format(domain.DateFormat), slot.StartTime, slot.DurationMinutes,
			conflict.Kind, conflict.Start, conflict.End)
		return false, nil
	}
	return true, nil
}

// Calendar строит календарь мастера на дату слота
func (r *Resolver) Calendar(ctx context.Context, staffID uuid.UUID, slot domain.SlotRequest) (*domain.Calendar, error) {
	if _, err := r.staffRepo.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: Calendar - get staff: %v", ErrStoreUnavailable, err)
	}

	calendars, err := r.loadCalendars(ctx, []*domain.StaffMember{{ID: staffID}}, slot)
	if err != nil {
		return nil, err
	}
	return calendars[staffID], nil
}

func (r *Resolver) loadCalendars(ctx context.Context, members []*domain.StaffMember, slot domain.SlotRequest) (map[uuid.UUID]*domain.Calendar, error) {
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	date := domain.DateOnly(slot.Date)
	bookings, err := r.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StaffIDs:  ids,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: loadCalendars - bookings: %v", ErrStoreUnavailable, err)
	}

	blocks, err := r.staffRepo.GetBlocks(ctx, ids, date)
	if err != nil {
		return nil, fmt.Errorf("%w: loadCalendars - blocks: %v", ErrStoreUnavailable, err)
	}

	calendars := make(map[uuid.UUID]*domain.Calendar, len(ids))
	for _, id := range ids {
		calendars[id] = domain.BuildCalendar(id, date, bookings, blocks[id])
	}
	return calendars, nil
}
