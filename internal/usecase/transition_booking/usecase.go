package transition_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaBooking/pkg/txmanager"
)

const (
	stageAccept  = "accept"
	eventChanged = "booking_status_changed"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	slots       SlotChecker
	txManager   TransactionManager
	notifier    Notifier
	cache       CacheInvalidator
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slots SlotChecker,
	txManager TransactionManager,
	notifier Notifier,
	cache CacheInvalidator,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slots:       slots,
		txManager:   txManager,
		notifier:    notifier,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute применяет действие к бронированию.
// Повторная отмена отмененного бронирования возвращает успех без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%s, action=%s, actor=%s (%s)",
		req.BookingID, req.Action, req.ActorID, req.ActorRole)

	// 1. Валидация входных данных
	if req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if !req.ActorRole.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.ActorRole)
	}
	action, err := domain.ParseBookingAction(req.Action)
	if err != nil {
		uc.logger.Warn("TransitionBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		result *domain.Booking
		from   domain.BookingStatus
		noop   bool
	)

	// 2. Читаем и меняем статус в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование (FOR UPDATE внутри транзакции)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("TransitionBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
		}

		// 2.2. Участник должен быть связан с бронированием
		if !canAct(booking, req.ActorID, req.ActorRole) {
			uc.logger.Warn("TransitionBooking: actor=%s (%s) is not a party of booking id=%s",
				req.ActorID, req.ActorRole, booking.ID)
			return ErrAccessDenied
		}

		// 2.3. Проверяем переход по таблице жизненного цикла
		next, isNoop, err := domain.NextStatus(booking.Status, action, req.ActorRole)
		if err != nil {
			uc.logger.Warn("TransitionBooking: booking id=%s: %v", booking.ID, err)
			if errors.Is(err, domain.ErrActionNotPermitted) {
				return fmt.Errorf("%w: %v", ErrAccessDenied, err)
			}
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		from = booking.Status
		if isNoop {
			noop = true
			result = booking
			return nil
		}

		// 2.4. При подтверждении повторно проверяем интервал под блокировкой дня мастера
		if action == domain.ActionAccept {
			if err := uc.recheckSlot(txCtx, booking); err != nil {
				return err
			}
		}

		// 2.5. Сохраняем новый статус
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, next); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrStoreUnavailable, err)
		}

		booking.Status = next
		booking.UpdatedAt = time.Now()
		result = booking
		return nil
	})

	if errors.Is(err, txmanager.ErrTransaction) {
		uc.logger.Error("TransitionBooking: transaction failed: %v", err)
		err = fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err != nil {
		uc.metrics.Transition(string(action), false)
		return nil, err
	}

	if noop {
		uc.logger.Info("TransitionBooking: booking id=%s already %s", result.ID, result.Status)
		return &Response{Booking: result, Noop: true}, nil
	}

	uc.metrics.Transition(string(action), true)
	uc.logger.Info("TransitionBooking: booking id=%s %s -> %s", result.ID, from, result.Status)

	// 3. Побочные эффекты после коммита
	if err := uc.notifier.StatusChanged(ctx, result, from, result.Status); err != nil {
		uc.metrics.NotificationFailed(eventChanged)
		uc.logger.Error("TransitionBooking: failed to notify about booking id=%s: %v", result.ID, err)
	}

	// Терминальный статус освобождает интервал мастера
	if result.IsTerminal() {
		if err := uc.cache.Invalidate(ctx, result.BookingDate); err != nil {
			uc.logger.Warn("TransitionBooking: failed to invalidate availability cache: %v", err)
		}
	}

	return &Response{Booking: result}, nil
}

func (uc *UseCase) recheckSlot(ctx context.Context, booking *domain.Booking) error {
	unlock, err := uc.bookingRepo.LockStaffDay(ctx, booking.StaffID, booking.BookingDate)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to lock staff day: %v", err)
		return fmt.Errorf("%w: failed to lock staff day: %v", ErrStoreUnavailable, err)
	}
	defer unlock()

	slot := domain.SlotRequest{
		Date:            booking.BookingDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.DurationMinutes,
	}
	free, err := uc.slots.IsSlotAvailable(ctx, booking.StaffID, slot, &booking.ID)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to check slot: %v", err)
		return fmt.Errorf("%w: failed to check slot: %v", ErrStoreUnavailable, err)
	}
	if !free {
		uc.metrics.SlotConflict(stageAccept)
		uc.logger.Warn("TransitionBooking: booking id=%s can no longer be accepted, interval is taken", booking.ID)
		return ErrSlotConflict
	}
	return nil
}

// canAct клиент действует только над своими бронированиями, мастер только над назначенными
func canAct(booking *domain.Booking, actorID uuid.UUID, role domain.Role) bool {
	switch role {
	case domain.RoleCustomer:
		return actorID != uuid.Nil && booking.CustomerID == actorID
	case domain.RoleStaff:
		return actorID != uuid.Nil && booking.StaffID == actorID
	case domain.RoleAdmin, domain.RoleSystem:
		return true
	}
	return false
}
