package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockStaffDay(ctx context.Context, staffID uuid.UUID, date time.Time) (func(), error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
}

// CatalogRepository интерфейс справочника услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetAddons(ctx context.Context, ids []string) (map[string]*domain.Addon, error)
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
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// CacheInvalidator сброс кэша отображения доступности
type CacheInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	BookingCommitted(category string)
	SlotConflict(stage string)
	NotificationFailed(event string)
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
