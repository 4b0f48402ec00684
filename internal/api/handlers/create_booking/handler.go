package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SpaBooking/internal/usecase/create_booking"
)

const (
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgOnlyCustomers      = "бронировать могут только клиенты"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "мастер не найден"
	msgStaffUnavailable   = "мастер не может принять это бронирование"
	msgInvalidDuration    = "длительность не предусмотрена услугой"
	msgInvalidAddon       = "некорректное дополнение к услуге"
	msgInvalidTimeSlot    = "время не входит в сетку слотов"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}
	if role != domain.RoleCustomer {
		h.logger.Warn("POST /bookings - Role %s cannot book: user_id=%s", role, userID)
		handlers.RespondForbidden(w, msgOnlyCustomers)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		var pe *parseError
		if errors.As(err, &pe) {
			handlers.RespondBadRequest(w, pe.msg)
			return
		}
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%s, staff_id=%s, date=%s, time=%s",
				userID, req.StaffID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, handlers.MsgSlotConflict)

		case errors.Is(err, createBooking.ErrStaffUnavailable):
			h.logger.Warn("POST /bookings - Staff unavailable: staff_id=%s", req.StaffID)
			handlers.RespondConflict(w, msgStaffUnavailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidAddon):
			handlers.RespondBadRequest(w, msgInvalidAddon)

		case errors.Is(err, createBooking.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: user_id=%s, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, staff_id=%s",
		result.Booking.ID, userID, result.Booking.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
