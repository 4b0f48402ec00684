package check_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/service/availability"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
)

type stubChecker struct {
	free bool
	err  error
	got  domain.SlotRequest
}

func (s *stubChecker) IsSlotAvailable(ctx context.Context, staffID uuid.UUID, slot domain.SlotRequest, excludeBookingID *uuid.UUID) (bool, error) {
	s.got = slot
	return s.free, s.err
}

func request(staffID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/staff/"+staffID+"/availability?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"staffId": staffID})
}

func TestHandle(t *testing.T) {
	stub := &stubChecker{free: true}
	h := NewHandler(stub, logger.NewNop())
	staffID := uuid.NewString()

	rec := httptest.NewRecorder()
	h.Handle(rec, request(staffID, "date=2025-03-10&time=15:00&duration=90"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 90, stub.got.DurationMinutes)
	assert.Equal(t, "15:00", stub.got.StartTime.String())

	var resp SlotAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Equal(t, "2025-03-10", resp.Date)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		staffID  string
		query    string
		err      error
		expected int
	}{
		{"bad staff id", "nope", "date=2025-03-10&time=15:00&duration=60", nil, http.StatusBadRequest},
		{"bad date", uuid.NewString(), "date=10.03.2025&time=15:00&duration=60", nil, http.StatusBadRequest},
		{"bad duration", uuid.NewString(), "date=2025-03-10&time=15:00&duration=0", nil, http.StatusBadRequest},
		{"unknown staff", uuid.NewString(), "date=2025-03-10&time=15:00&duration=60", availability.ErrStaffNotFound, http.StatusNotFound},
		{"store down", uuid.NewString(), "date=2025-03-10&time=15:00&duration=60", availability.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubChecker{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, request(tt.staffID, tt.query))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
