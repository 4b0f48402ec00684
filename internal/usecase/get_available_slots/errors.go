package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidDuration возвращается, если длительность не предусмотрена услугой
	ErrInvalidDuration = errors.New("get_available_slots: duration is not offered for this service")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("get_available_slots: store unavailable")
)
