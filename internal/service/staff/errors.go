package staff

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff: staff member not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на изменение
	ErrAccessDenied = errors.New("staff: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("staff: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("staff: store unavailable")
)
