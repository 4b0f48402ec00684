package find_available_staff

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// StaffResolver поиск свободных мастеров на интервал
type StaffResolver interface {
	FindAvailableStaff(ctx context.Context, serviceID uuid.UUID, slot domain.SlotRequest) ([]*domain.StaffMember, error)
}

// CatalogRepository интерфейс для чтения каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
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
