package update_staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBooking/internal/service/staff"
	"github.com/m04kA/SMC-SpaBooking/internal/service/staff/models"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgStaffNotFound  = "мастер не найден"
	msgNothingToDo    = "нужно указать available или verified"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/staff/{staffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathUUID(r, "staffId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	userID, role, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("PATCH /staff/{id} - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	var req UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(models.Actor{ID: userID, Role: role}, staffID))
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgNothingToDo)
		case errors.Is(err, staff.ErrAccessDenied):
			h.logger.Warn("PATCH /staff/{id} - Access denied: staff_id=%s, user_id=%s", staffID, userID)
			handlers.RespondForbidden(w, handlers.MsgForbidden)
		case errors.Is(err, staff.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, staff.ErrStoreUnavailable):
			h.logger.Error("PATCH /staff/{id} - Store unavailable: staff_id=%s, error=%v", staffID, err)
			handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)
		default:
			h.logger.Error("PATCH /staff/{id} - Failed to update staff: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /staff/{id} - Staff updated: staff_id=%s, by user_id=%s", staffID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
