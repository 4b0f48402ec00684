package transition_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	transitionBooking "github.com/m04kA/SMC-SpaBooking/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
)

type stubUseCase struct {
	got *transitionBooking.Request
	err error
}

func (s *stubUseCase) Execute(ctx context.Context, req *transitionBooking.Request) (*transitionBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &transitionBooking.Response{
		Booking: &domain.Booking{ID: req.BookingID, Status: domain.StatusCancelled},
		Noop:    true,
	}, nil
}

func newRequest(bookingID string, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID+"/transitions", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	return req.WithContext(middleware.WithUser(req.Context(), uuid.New(), domain.RoleCustomer))
}

func TestHandle(t *testing.T) {
	bookingID := uuid.New()

	tests := []struct {
		name     string
		id       string
		body     string
		err      error
		expected int
	}{
		{"ok", bookingID.String(), `{"action":"cancel"}`, nil, http.StatusOK},
		{"bad id", "42", `{"action":"cancel"}`, nil, http.StatusBadRequest},
		{"bad body", bookingID.String(), `{"action":`, nil, http.StatusBadRequest},
		{"not found", bookingID.String(), `{"action":"cancel"}`, transitionBooking.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", bookingID.String(), `{"action":"accept"}`, transitionBooking.ErrAccessDenied, http.StatusForbidden},
		{"terminal", bookingID.String(), `{"action":"cancel"}`, transitionBooking.ErrInvalidTransition, http.StatusConflict},
		{"slot taken", bookingID.String(), `{"action":"accept"}`, transitionBooking.ErrSlotConflict, http.StatusConflict},
		{"unknown action", bookingID.String(), `{"action":"teleport"}`, transitionBooking.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubUseCase{err: tt.err}
			rec := httptest.NewRecorder()

			NewHandler(stub, logger.NewNop()).Handle(rec, newRequest(tt.id, tt.body))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestHandle_PassesActor(t *testing.T) {
	stub := &stubUseCase{}
	bookingID := uuid.New()
	rec := httptest.NewRecorder()

	NewHandler(stub, logger.NewNop()).Handle(rec, newRequest(bookingID.String(), `{"action":"cancel"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bookingID, stub.got.BookingID)
	assert.Equal(t, "cancel", stub.got.Action)
	assert.Equal(t, domain.RoleCustomer, stub.got.ActorRole)
	assert.Contains(t, rec.Body.String(), `"noop":true`)
}
