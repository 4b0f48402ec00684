package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
)

const msgInvalidQuery = "некорректные параметры запроса"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: date | startDate, endDate; status; includeTerminal; staffId (только admin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	serviceReq, err := ToServiceRequest(models.Actor{ID: userID, Role: role}, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, handlers.MsgForbidden)
		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /bookings - Store unavailable: user_id=%s, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)
		default:
			h.logger.Error("GET /bookings - Failed to get bookings: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%s, role=%s, count=%d",
		userID, role, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
