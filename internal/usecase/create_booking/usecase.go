package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/catalog"
	staffRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SpaBooking/pkg/txmanager"
)

const (
	stagePrecheck = "precheck"
	stageInsert   = "insert"
	eventCreated  = "booking_created"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	catalogRepo  CatalogRepository
	slots        SlotChecker
	txManager    TransactionManager
	notifier     Notifier
	cache        CacheInvalidator
	metrics      MetricsRecorder
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	catalogRepo CatalogRepository,
	slots SlotChecker,
	txManager TransactionManager,
	notifier Notifier,
	cache CacheInvalidator,
	metrics MetricsRecorder,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		catalogRepo:  catalogRepo,
		slots:        slots,
		txManager:    txManager,
		notifier:     notifier,
		cache:        cache,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка слота и вставка выполняются под блокировкой дня мастера,
// exclusion constraint в БД остается вторым рубежом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, service=%s, staff=%s, date=%s, time=%s, duration=%d",
		req.CustomerID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в зоне обслуживания
	now := uc.policy.Now(uc.timeProvider.Now())

	// 3. Получаем услугу и проверяем длительность
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStoreUnavailable, err)
	}

	basePrice, ok := service.PriceFor(req.DurationMinutes)
	if !ok {
		uc.logger.Warn("CreateBooking: service id=%s has no %d minute option", req.ServiceID, req.DurationMinutes)
		return nil, fmt.Errorf("%w: offered durations are %v", ErrInvalidDuration, service.Durations())
	}

	// 4. Проверяем дополнения
	var addons []*domain.Addon
	if len(req.Addons) > 0 {
		found, err := uc.catalogRepo.GetAddons(ctx, req.Addons)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get add-ons: %v", err)
			return nil, fmt.Errorf("%w: failed to get add-ons: %v", ErrStoreUnavailable, err)
		}
		addons, err = resolveAddons(req.Addons, found, service.Category)
		if err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}
	}

	// 5. Получаем мастера и проверяем, что он может принять запись
	member, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrStoreUnavailable, err)
	}
	if !member.IsBookable() || !member.HasSkill(service.RequiredSkill) {
		uc.logger.Warn("CreateBooking: staff id=%s cannot take service id=%s (available=%t, verified=%t)",
			member.ID, service.ID, member.Available, member.Verified)
		return nil, ErrStaffUnavailable
	}

	// 6. Время должно быть слотом из сетки
	if !uc.policy.IsCatalogSlot(req.StartTime) {
		uc.logger.Warn("CreateBooking: %s is not a catalog slot", req.StartTime)
		return nil, ErrInvalidTime
	}
	if err := validateEndsSameDay(req.StartTime, req.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 7. Окно бронирования
	if err := validateDate(req.Date, now, uc.policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now, uc.policy.MinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 8. Цена считается на сервере, сумма клиента только сверяется
	total := calculateTotal(basePrice, addons)
	priceCorrected := false
	if req.ClientTotal != nil && !req.ClientTotal.Equal(total) {
		priceCorrected = true
		uc.logger.Warn("CreateBooking: client total %s differs from computed %s for customer=%s, using computed",
			req.ClientTotal.String(), total.String(), req.CustomerID)
	}

	paymentMethod := domain.PaymentMethod(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCash
	}

	slot := domain.SlotRequest{
		Date:            domain.DateOnly(req.Date),
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	}

	var result *domain.Booking

	// 9. Проверка и вставка под блокировкой дня мастера
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 9.1. Сериализуем коммиты на пару (мастер, дата)
		unlock, err := uc.bookingRepo.LockStaffDay(txCtx, member.ID, slot.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to lock staff day: %v", err)
			return fmt.Errorf("%w: failed to lock staff day: %v", ErrStoreUnavailable, err)
		}
		defer unlock()

		// 9.2. Проверяем слот по живому хранилищу
		free, err := uc.slots.IsSlotAvailable(txCtx, member.ID, slot, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrStoreUnavailable, err)
		}
		if !free {
			uc.metrics.SlotConflict(stagePrecheck)
			uc.logger.Warn("CreateBooking: staff=%s %s %s+%dm is taken",
				member.ID, slot.Date.Format(domain.DateFormat), slot.StartTime, slot.DurationMinutes)
			return ErrSlotConflict
		}

		// 9.3. Создаем запись
		booking := &domain.Booking{
			ServiceID:       service.ID,
			StaffID:         member.ID,
			CustomerID:      req.CustomerID,
			BookingDate:     slot.Date,
			StartTime:       slot.StartTime,
			DurationMinutes: slot.DurationMinutes,
			Addons:          req.Addons,
			TotalPrice:      total,
			StaffRequired:   service.StaffRequired,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Location:        req.Location,
			Notes:           req.Notes,
			Status:          domain.StatusPending,
			PaymentMethod:   paymentMethod,
			PaymentStatus:   domain.PaymentStatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.metrics.SlotConflict(stageInsert)
				uc.logger.Warn("CreateBooking: insert rejected by overlap guard: %v", err)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if errors.Is(err, txmanager.ErrTransaction) {
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		err = fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 10. Побочные эффекты после коммита, на результат не влияют
	if err := uc.notifier.BookingCreated(ctx, result); err != nil {
		uc.metrics.NotificationFailed(eventCreated)
		uc.logger.Error("CreateBooking: failed to notify about booking id=%s: %v", result.ID, err)
	}
	if err := uc.cache.Invalidate(ctx, result.BookingDate); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate availability cache: %v", err)
	}
	uc.metrics.BookingCommitted(string(service.Category))

	return &Response{
		Booking:        result,
		PriceCorrected: priceCorrected,
	}, nil
}
