package list_bookings

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
)

func TestToServiceRequest(t *testing.T) {
	actor := models.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	staffID := uuid.New()

	req, err := ToServiceRequest(actor, url.Values{
		"date":            {"2025-03-10"},
		"status":          {"confirmed"},
		"includeTerminal": {"true"},
		"staffId":         {staffID.String()},
	})
	require.NoError(t, err)

	assert.Equal(t, actor, req.Actor)
	require.NotNil(t, req.StartDate)
	assert.Equal(t, req.StartDate, req.EndDate)
	assert.Equal(t, "2025-03-10", req.StartDate.Format(domain.DateFormat))
	assert.Equal(t, "confirmed", *req.Status)
	assert.True(t, req.IncludeTerminal)
	assert.Equal(t, staffID, *req.StaffID)

	period, err := ToServiceRequest(actor, url.Values{"startDate": {"2025-03-01"}, "endDate": {"2025-03-31"}})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", period.StartDate.Format(domain.DateFormat))
	assert.Equal(t, "2025-03-31", period.EndDate.Format(domain.DateFormat))
	assert.Nil(t, period.Status)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	actor := models.Actor{ID: uuid.New(), Role: domain.RoleCustomer}

	for name, query := range map[string]url.Values{
		"date":            {"date": {"10/03/2025"}},
		"endDate":         {"endDate": {"tomorrow"}},
		"includeTerminal": {"includeTerminal": {"maybe"}},
		"staffId":         {"staffId": {"42"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ToServiceRequest(actor, query)
			assert.Error(t, err)
		})
	}
}
