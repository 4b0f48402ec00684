package transition_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	transitionBooking "github.com/m04kA/SMC-SpaBooking/internal/usecase/transition_booking"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgNotFound          = "бронирование не найдено"
	msgInvalidTransition = "действие недопустимо в текущем статусе бронирования"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/transitions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/transitions - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, role, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/transitions - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/transitions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionBooking.Request{
		BookingID: bookingID,
		Action:    req.Action,
		ActorID:   userID,
		ActorRole: role,
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/transitions - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/transitions - Access denied: booking_id=%s, user_id=%s, action=%s",
				bookingID, userID, req.Action)
			handlers.RespondForbidden(w, handlers.MsgForbidden)

		case errors.Is(err, transitionBooking.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/transitions - Invalid transition: booking_id=%s, action=%s", bookingID, req.Action)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, transitionBooking.ErrSlotConflict):
			handlers.RespondConflict(w, handlers.MsgSlotConflict)

		case errors.Is(err, transitionBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, transitionBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings/{id}/transitions - Store unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings/{id}/transitions - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/transitions - booking_id=%s, action=%s, status=%s, noop=%t",
		bookingID, req.Action, result.Booking.Status, result.Noop)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
