package list_staff

import (
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBooking/internal/service/staff/models"
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

// Handle GET /api/v1/staff?skill=
// Без авторизации и для не-админов возвращаются только верифицированные мастера.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListStaffRequest{}
	if userID, role, ok := middleware.GetUser(r.Context()); ok {
		req.Actor = models.Actor{ID: userID, Role: role}
	}
	if skill := r.URL.Query().Get("skill"); skill != "" {
		req.Skill = &skill
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /staff - Failed to list staff: %v", err)
		handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
