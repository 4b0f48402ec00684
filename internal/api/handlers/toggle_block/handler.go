package toggle_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	toggleBlock "github.com/m04kA/SMC-SpaBooking/internal/usecase/toggle_block"
)

const (
	msgInvalidStaffID = "некорректный ID мастера"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime    = "некорректный формат времени, ожидается HH:MM"
	msgStaffNotFound  = "мастер не найден"
	msgSlotBooked     = "на этот слот есть бронирование, заблокировать его нельзя"
	msgNotCatalogSlot = "время не входит в сетку слотов"
	msgPastDate       = "нельзя менять слоты в прошлом"
)

type Handler struct {
	useCase ToggleBlockUseCase
	logger  Logger
}

func NewHandler(useCase ToggleBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff/{staffId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathUUID(r, "staffId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	userID, role, ok := middleware.GetUser(r.Context())
	if !ok {
		h.logger.Warn("PUT /staff/{id}/blocks - Missing user")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
		return
	}

	var req ToggleBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidBody)
		return
	}
	date, err := handlers.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	startTime, err := handlers.ParseTime(req.Time)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &toggleBlock.Request{
		StaffID:   staffID,
		ActorID:   userID,
		ActorRole: role,
		Date:      date,
		StartTime: startTime,
		Blocked:   req.Blocked,
	})
	if err != nil {
		switch {
		case errors.Is(err, toggleBlock.ErrAccessDenied):
			h.logger.Warn("PUT /staff/{id}/blocks - Access denied: staff_id=%s, user_id=%s", staffID, userID)
			handlers.RespondForbidden(w, handlers.MsgForbidden)
		case errors.Is(err, toggleBlock.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, toggleBlock.ErrSlotBooked):
			handlers.RespondConflict(w, msgSlotBooked)
		case errors.Is(err, toggleBlock.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgNotCatalogSlot)
		case errors.Is(err, toggleBlock.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)
		case errors.Is(err, toggleBlock.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, toggleBlock.ErrStoreUnavailable):
			h.logger.Error("PUT /staff/{id}/blocks - Store unavailable: staff_id=%s, error=%v", staffID, err)
			handlers.RespondServiceUnavailable(w, handlers.MsgStoreUnavailable)
		default:
			h.logger.Error("PUT /staff/{id}/blocks - Failed: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/blocks - staff_id=%s, slot=%s, blocked=%t, changed=%t",
		staffID, result.Slot.Key(), result.Blocked, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
