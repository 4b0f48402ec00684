package toggle_block

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("toggle_block: staff member not found")

	// ErrAccessDenied возвращается, когда мастер пытается изменить чужой календарь
	ErrAccessDenied = errors.New("toggle_block: access denied")

	// ErrSlotBooked возвращается при попытке заблокировать слот с активной записью
	ErrSlotBooked = errors.New("toggle_block: slot is already booked")

	// ErrInvalidTime возвращается, когда время не входит в сетку слотов
	ErrInvalidTime = errors.New("toggle_block: start time is not a bookable slot")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("toggle_block: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("toggle_block: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("toggle_block: store unavailable")
)
