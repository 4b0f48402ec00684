package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_booking: staff member not found")

	// ErrStaffUnavailable возвращается, когда мастер выключен, не верифицирован или не владеет навыком
	ErrStaffUnavailable = errors.New("create_booking: staff member cannot take this booking")

	// ErrInvalidDuration возвращается, если длительность не предусмотрена услугой
	ErrInvalidDuration = errors.New("create_booking: duration is not offered for this service")

	// ErrInvalidAddon возвращается для неизвестного дополнения или дополнения не той категории
	ErrInvalidAddon = errors.New("create_booking: invalid add-on")

	// ErrInvalidTime возвращается, когда время не входит в сетку слотов
	ErrInvalidTime = errors.New("create_booking: start time is not a bookable slot")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotConflict возвращается, когда интервал уже занят. Клиент должен заново запросить доступность.
	ErrSlotConflict = errors.New("create_booking: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")
)
