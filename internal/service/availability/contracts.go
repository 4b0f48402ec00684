package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
	GetBlocks(ctx context.Context, staffIDs []uuid.UUID, date time.Time) (map[uuid.UUID][]domain.BlockedSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс справочника услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// Cache кэш ответов для отображения
type Cache interface {
	GetStaff(ctx context.Context, date time.Time, query string) ([]*domain.StaffMember, string, bool, error)
	SetStaff(ctx context.Context, date time.Time, version, query string, staff []*domain.StaffMember) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
