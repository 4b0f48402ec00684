package find_available_staff

import "errors"

var (
	ErrServiceNotFound    = errors.New("find_available_staff: service not found")
	ErrInvalidDuration    = errors.New("find_available_staff: duration is not offered for this service")
	ErrInvalidTime        = errors.New("find_available_staff: time is not a catalog slot")
	ErrInvalidDate        = errors.New("find_available_staff: invalid booking date")
	ErrDateTooFarInFuture = errors.New("find_available_staff: date is too far in the future")
	ErrTooLateToBook      = errors.New("find_available_staff: slot starts inside the minimum notice window")
	ErrInvalidInput       = errors.New("find_available_staff: invalid input data")
	ErrStoreUnavailable   = errors.New("find_available_staff: store unavailable")
)
