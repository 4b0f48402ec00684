package check_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/service/availability"
)

const (
	msgInvalidStaffID  = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime     = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration = "некорректная длительность"
	msgStaffNotFound   = "мастер не найден"
)

type Handler struct {
	slots  SlotChecker
	logger Logger
}

func NewHandler(slots SlotChecker, logger Logger) *Handler {
	return &Handler{
		slots:  slots,
		logger: logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/availability
// Query params: date (YYYY-MM-DD), time (HH:MM), duration (минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathUUID(r, "staffId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
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

	slot := domain.SlotRequest{Date: domain.DateOnly(date), StartTime: startTime, DurationMinutes: duration}
	free, err := h.slots.IsSlotAvailable(r.Context(), staffID, slot, nil)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, availability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDuration)
		case errors.Is(err, availability.ErrStoreUnavailable):
			h.logger.Error("GET /staff/{id}/availability - Store unavailable: staff_id=%s, error=%v", staffID, err)
			handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)
		default:
			h.logger.Error("GET /staff/{id}/availability - Failed: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SlotAvailabilityResponse{
		StaffID:         staffID,
		Date:            slot.Date.Format(domain.DateFormat),
		StartTime:       startTime.String(),
		DurationMinutes: duration,
		Available:       free,
	})
}
