package toggle_block

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	staffRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SpaBooking/pkg/txmanager"
)

// UseCase use case ручной блокировки слота мастером
type UseCase struct {
	staffRepo    StaffRepository
	locker       DayLocker
	slots        SlotChecker
	txManager    TransactionManager
	cache        CacheInvalidator
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	locker DayLocker,
	slots SlotChecker,
	txManager TransactionManager,
	cache CacheInvalidator,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:    staffRepo,
		locker:       locker,
		slots:        slots,
		txManager:    txManager,
		cache:        cache,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute блокирует или снимает блокировку часового слота.
// Слот с активной записью заблокировать нельзя. Повторный запрос в том же состоянии ничего не меняет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleBlock: staff=%s, date=%s, time=%s, blocked=%t",
		req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.Blocked)

	// 1. Валидация входных данных
	if req.StaffID == uuid.Nil || req.Date.IsZero() || req.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: staffID, date and time are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	// 2. Только сам мастер управляет своим календарем
	if req.ActorRole != domain.RoleStaff || req.ActorID != req.StaffID {
		uc.logger.Warn("ToggleBlock: actor=%s (%s) cannot edit calendar of staff=%s", req.ActorID, req.ActorRole, req.StaffID)
		return nil, ErrAccessDenied
	}

	// 3. Слот из сетки и не в прошлом
	if !uc.policy.IsCatalogSlot(req.StartTime) {
		return nil, ErrInvalidTime
	}
	now := uc.policy.Now(uc.timeProvider.Now())
	if domain.DateOnly(req.Date).Before(domain.DateOnly(now)) {
		return nil, ErrInvalidDate
	}

	// 4. Мастер существует
	if _, err := uc.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("ToggleBlock: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrStoreUnavailable, err)
	}

	block := domain.BlockedSlot{Date: domain.DateOnly(req.Date), StartTime: req.StartTime}
	changed := false

	// 5. Под блокировкой дня мастера: та же блокировка, что и при создании записи
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		unlock, err := uc.locker.LockStaffDay(txCtx, req.StaffID, block.Date)
		if err != nil {
			uc.logger.Error("ToggleBlock: failed to lock staff day: %v", err)
			return fmt.Errorf("%w: failed to lock staff day: %v", ErrStoreUnavailable, err)
		}
		defer unlock()

		if req.Blocked {
			// 5.1. Уже заблокирован - ничего не делаем
			blocks, err := uc.staffRepo.GetBlocks(txCtx, []uuid.UUID{req.StaffID}, block.Date)
			if err != nil {
				return fmt.Errorf("%w: failed to get blocks: %v", ErrStoreUnavailable, err)
			}
			for _, existing := range blocks[req.StaffID] {
				if existing.Key() == block.Key() {
					return nil
				}
			}

			// 5.2. Нельзя заблокировать слот, на который есть активная запись
			slot := domain.SlotRequest{Date: block.Date, StartTime: block.StartTime, DurationMinutes: domain.BlockDurationMinutes}
			free, err := uc.slots.IsSlotAvailable(txCtx, req.StaffID, slot, nil)
			if err != nil {
				return fmt.Errorf("%w: failed to check slot: %v", ErrStoreUnavailable, err)
			}
			if !free {
				uc.logger.Warn("ToggleBlock: staff=%s %s is booked", req.StaffID, block.Key())
				return ErrSlotBooked
			}
		}

		// 5.3. Сохраняем
		changed, err = uc.staffRepo.SetBlock(txCtx, req.StaffID, block.Date, block.StartTime, req.Blocked)
		if err != nil {
			uc.logger.Error("ToggleBlock: failed to set block: %v", err)
			return fmt.Errorf("%w: failed to set block: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if errors.Is(err, txmanager.ErrTransaction) {
		uc.logger.Error("ToggleBlock: transaction failed: %v", err)
		err = fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	// 6. Сбрасываем кэш отображения
	if changed {
		if err := uc.cache.Invalidate(ctx, block.Date); err != nil {
			uc.logger.Warn("ToggleBlock: failed to invalidate availability cache: %v", err)
		}
	}

	return &Response{Slot: block, Blocked: req.Blocked, Changed: changed}, nil
}
