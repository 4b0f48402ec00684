package find_available_staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	findAvailableStaff "github.com/m04kA/SMC-SpaBooking/internal/usecase/find_available_staff"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration  = "некорректная длительность"
	msgServiceNotFound  = "услуга не найдена"
	msgNotOffered       = "длительность не предусмотрена услугой"
	msgNotCatalogSlot   = "время не входит в сетку слотов"
	msgBookingDate      = "некорректная дата бронирования"
	msgDateTooFar       = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook    = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase FindAvailableStaffUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableStaffUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-staff
// Query params: date (YYYY-MM-DD), time (HH:MM), duration (минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathUUID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-staff - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	query := r.URL.Query()
	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	startTime, err := handlers.ParseTime(query.Get("time"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	duration, err := handlers.ParseDuration(query.Get("duration"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &findAvailableStaff.Request{
		ServiceID:       serviceID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, findAvailableStaff.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, findAvailableStaff.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgNotOffered)
		case errors.Is(err, findAvailableStaff.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgNotCatalogSlot)
		case errors.Is(err, findAvailableStaff.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgBookingDate)
		case errors.Is(err, findAvailableStaff.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)
		case errors.Is(err, findAvailableStaff.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)
		case errors.Is(err, findAvailableStaff.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, findAvailableStaff.ErrStoreUnavailable):
			h.logger.Error("GET /services/{id}/available-staff - Store unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)
		default:
			h.logger.Error("GET /services/{id}/available-staff - Failed: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/available-staff - %d staff free: service_id=%s, date=%s, time=%s",
		len(result.Staff), serviceID, query.Get("date"), startTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
