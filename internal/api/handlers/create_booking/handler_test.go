package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SpaBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func newRequest(t *testing.T, role domain.Role, userID uuid.UUID, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(payload))
	return req.WithContext(middleware.WithUser(req.Context(), userID, role))
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"serviceId":       uuid.NewString(),
		"staffId":         uuid.NewString(),
		"bookingDate":     "2025-03-10",
		"startTime":       "14:00",
		"durationMinutes": 60,
		"customerName":    "Customer",
		"customerPhone":   "+66000000000",
		"location":        "Hotel room 12",
		"totalPrice":      "1",
	}
}

func TestHandle_Created(t *testing.T) {
	customerID := uuid.New()
	stub := &stubUseCase{resp: &createBooking.Response{
		Booking: &domain.Booking{
			ID:              uuid.New(),
			CustomerID:      customerID,
			BookingDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			StartTime:       "14:00",
			DurationMinutes: 60,
			TotalPrice:      decimal.NewFromInt(500),
			Status:          domain.StatusPending,
		},
		PriceCorrected: true,
	}}
	h := NewHandler(stub, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, domain.RoleCustomer, customerID, validBody()))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, customerID, stub.got.CustomerID)
	assert.True(t, decimal.NewFromInt(1).Equal(*stub.got.ClientTotal))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, "15:00", resp["endTime"])
	assert.Equal(t, true, resp["priceCorrected"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		body     func() map[string]interface{}
		err      error
		expected int
		message  string
	}{
		{
			name:     "slot conflict",
			role:     domain.RoleCustomer,
			body:     validBody,
			err:      createBooking.ErrSlotConflict,
			expected: http.StatusConflict,
			message:  handlers.MsgSlotConflict,
		},
		{
			name:     "staff unavailable",
			role:     domain.RoleCustomer,
			body:     validBody,
			err:      createBooking.ErrStaffUnavailable,
			expected: http.StatusConflict,
		},
		{
			name:     "service not found",
			role:     domain.RoleCustomer,
			body:     validBody,
			err:      createBooking.ErrServiceNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "store down",
			role:     domain.RoleCustomer,
			body:     validBody,
			err:      createBooking.ErrStoreUnavailable,
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "staff cannot book",
			role:     domain.RoleStaff,
			body:     validBody,
			expected: http.StatusForbidden,
		},
		{
			name: "bad date",
			role: domain.RoleCustomer,
			body: func() map[string]interface{} {
				b := validBody()
				b["bookingDate"] = "10.03.2025"
				return b
			},
			expected: http.StatusBadRequest,
			message:  msgInvalidDate,
		},
		{
			name: "unknown field",
			role: domain.RoleCustomer,
			body: func() map[string]interface{} {
				b := validBody()
				b["status"] = "confirmed"
				return b
			},
			expected: http.StatusBadRequest,
			message:  handlers.MsgInvalidBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(t, tt.role, uuid.New(), tt.body()))

			assert.Equal(t, tt.expected, rec.Code)
			if tt.message != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.message, resp.Message)
			}
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
