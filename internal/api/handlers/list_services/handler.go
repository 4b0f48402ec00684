package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
