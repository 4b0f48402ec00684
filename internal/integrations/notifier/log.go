package notifier

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// ErrPublish возвращается, когда событие не удалось опубликовать
var ErrPublish = errors.New("notifier: failed to publish event")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// LogNotifier пишет события в лог, когда Kafka выключена
type LogNotifier struct {
	logger Logger
}

// NewLogNotifier создает notifier, который только логирует
func NewLogNotifier(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// BookingCreated логирует новую запись
func (n *LogNotifier) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	n.logger.Info("notifier: booking created id=%s staff=%s date=%s time=%s",
		booking.ID, booking.StaffID, booking.BookingDate.Format(domain.DateFormat), booking.StartTime)
	return nil
}

// StatusChanged логирует смену статуса
func (n *LogNotifier) StatusChanged(ctx context.Context, booking *domain.Booking, from, to domain.BookingStatus) error {
	n.logger.Info("notifier: booking id=%s status %s -> %s", booking.ID, from, to)
	return nil
}

// Close ничего не делает
func (n *LogNotifier) Close() error {
	return nil
}
