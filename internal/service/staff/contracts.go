package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
	SetAvailable(ctx context.Context, id uuid.UUID, available bool) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

// CacheInvalidator сброс кэша отображения доступности
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
