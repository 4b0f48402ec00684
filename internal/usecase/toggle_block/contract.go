package toggle_block

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
	GetBlocks(ctx context.Context, staffIDs []uuid.UUID, date time.Time) (map[uuid.UUID][]domain.BlockedSlot, error)
	SetBlock(ctx context.Context, staffID uuid.UUID, date time.Time, start types.TimeString, blocked bool) (bool, error)
}

// DayLocker блокировка дня мастера, общая с созданием бронирований
type DayLocker interface {
	LockStaffDay(ctx context.Context, staffID uuid.UUID, date time.Time) (func(), error)
}

// SlotChecker проверка пересечений по живому хранилищу
type SlotChecker interface {
	IsSlotAvailable(ctx context.Context, staffID uuid.UUID, slot domain.SlotRequest, excludeBookingID *uuid.UUID) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator сброс кэша отображения доступности
type CacheInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
