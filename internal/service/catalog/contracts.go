package catalog

import (
	"context"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// CatalogRepository интерфейс справочника услуг
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
