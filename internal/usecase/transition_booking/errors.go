package transition_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrAccessDenied возвращается, когда участник не связан с бронированием или его роль не может выполнить действие
	ErrAccessDenied = errors.New("transition_booking: access denied")

	// ErrInvalidTransition возвращается, когда действие запрещено из текущего статуса
	ErrInvalidTransition = errors.New("transition_booking: invalid transition")

	// ErrSlotConflict возвращается при подтверждении, если интервал уже занят
	ErrSlotConflict = errors.New("transition_booking: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("transition_booking: store unavailable")
)
