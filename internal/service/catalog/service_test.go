package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
)

func TestListServices_OptionsSortedByDuration(t *testing.T) {
	store := memory.NewStore()
	store.AddService(&domain.Service{
		ID:            uuid.New(),
		Title:         "Oil massage",
		Category:      domain.CategoryMassage,
		RequiredSkill: "oil",
		StaffRequired: 1,
		Prices: map[int]decimal.Decimal{
			120: decimal.NewFromInt(1100),
			60:  decimal.NewFromInt(600),
			90:  decimal.NewFromInt(850),
		},
	})
	svc := NewService(store.Catalog(), domain.DefaultBookingPolicy(), logger.NewNop())

	resp, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)

	options := resp.Services[0].Options
	require.Len(t, options, 3)
	assert.Equal(t, []int{60, 90, 120}, []int{options[0].DurationMinutes, options[1].DurationMinutes, options[2].DurationMinutes})
	assert.True(t, decimal.NewFromInt(850).Equal(options[1].Price))
}

func TestPolicy_DefaultCatalog(t *testing.T) {
	svc := NewService(memory.NewStore().Catalog(), domain.DefaultBookingPolicy(), logger.NewNop())

	policy := svc.Policy()
	assert.Len(t, policy.TimeSlots, 11)
	assert.Equal(t, "10:00", policy.TimeSlots[0])
	assert.Equal(t, "20:00", policy.TimeSlots[10])
	assert.Equal(t, "UTC", policy.Timezone)
}
