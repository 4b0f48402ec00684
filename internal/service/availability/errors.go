package availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("availability.service: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("availability.service: staff member not found")

	// ErrInvalidDuration возвращается, если длительность не предусмотрена услугой
	ErrInvalidDuration = errors.New("availability.service: duration is not offered for this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability.service: invalid input data")

	// ErrStoreUnavailable возвращается, когда хранилище недоступно
	ErrStoreUnavailable = errors.New("availability.service: store unavailable")
)
