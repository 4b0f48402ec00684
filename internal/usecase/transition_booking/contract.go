package transition_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	LockStaffDay(ctx context.Context, staffID uuid.UUID, date time.Time) (func(), error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
}

// SlotChecker проверка пересечений по живому хранилищу
type SlotChecker interface {
	IsSlotAvailable(ctx context.Context, staffID uuid.UUID, slot domain.SlotRequest, excludeBookingID *uuid.UUID) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier публикация событий (best-effort)
type Notifier interface {
	StatusChanged(ctx context.Context, booking *domain.Booking, from, to domain.BookingStatus) error
}

// CacheInvalidator сброс кэша отображения доступности
type CacheInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	Transition(action string, ok bool)
	SlotConflict(stage string)
	NotificationFailed(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
