package find_available_staff

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	cache "github.com/m04kA/SMC-SpaBooking/internal/infra/cache/availability"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SpaBooking/internal/service/availability"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

var (
	testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	store     *memory.Store
	uc        *UseCase
	serviceID uuid.UUID
	staffA    uuid.UUID
	staffB    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()

	f := &fixture{store: store, serviceID: uuid.New(), staffA: uuid.New(), staffB: uuid.New()}
	store.AddService(&domain.Service{
		ID:            f.serviceID,
		Title:         "Thai massage",
		Category:      domain.CategoryMassage,
		RequiredSkill: "thai",
		StaffRequired: 1,
		Prices:        map[int]decimal.Decimal{60: decimal.NewFromInt(500), 90: decimal.NewFromInt(700)},
	})
	store.AddStaff(&domain.StaffMember{ID: f.staffA, Name: "A", Skills: []string{"thai"}, Rating: 4.5, Available: true, Verified: true})
	store.AddStaff(&domain.StaffMember{ID: f.staffB, Name: "B", Skills: []string{"thai"}, Rating: 4.9, Available: true, Verified: true})

	log := logger.NewNop()
	resolver := availability.NewResolver(store.Staff(), store.Bookings(), store.Catalog(), cache.Nop{}, log)
	f.uc = NewUseCase(resolver, store.Catalog(), domain.DefaultBookingPolicy(), log)
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func (f *fixture) request(start string, duration int) *Request {
	return &Request{ServiceID: f.serviceID, Date: testDate, StartTime: types.TimeString(start), DurationMinutes: duration}
}

func TestExecute_SortedByRatingWithPrice(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request("14:00", 90))
	require.NoError(t, err)

	require.Len(t, resp.Staff, 2)
	assert.Equal(t, f.staffB, resp.Staff[0].ID)
	assert.True(t, decimal.NewFromInt(700).Equal(resp.Price))
	assert.Equal(t, types.TimeString("15:30"), resp.EndTime)
}

func TestExecute_ExcludesBusyAndSwitchedOffStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Bookings().Create(ctx, &domain.Booking{
		StaffID:         f.staffA,
		CustomerID:      uuid.New(),
		BookingDate:     testDate,
		StartTime:       "14:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	})
	require.NoError(t, err)
	require.NoError(t, f.store.Staff().SetAvailable(ctx, f.staffB, false))

	resp, err := f.uc.Execute(ctx, f.request("14:00", 60))
	require.NoError(t, err)
	assert.Empty(t, resp.Staff)

	resp, err = f.uc.Execute(ctx, f.request("15:00", 60))
	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, f.staffA, resp.Staff[0].ID)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *Request)
		expected error
	}{
		{"missing service", func(req *Request) { req.ServiceID = uuid.Nil }, ErrInvalidInput},
		{"bad time", func(req *Request) { req.StartTime = "2pm" }, ErrInvalidInput},
		{"half hour", func(req *Request) { req.StartTime = "13:30" }, ErrInvalidTime},
		{"before catalog", func(req *Request) { req.StartTime = "09:00" }, ErrInvalidTime},
		{"past date", func(req *Request) { req.Date = testDate.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"first slot after notice", func(req *Request) { req.StartTime = "10:00" }, nil},
		{"unknown service", func(req *Request) { req.ServiceID = uuid.New() }, ErrServiceNotFound},
		{"duration not offered", func(req *Request) { req.DurationMinutes = 120 }, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request("14:00", 60)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExecute_MinimumNotice(t *testing.T) {
	f := newFixture(t)
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 13, 15, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), f.request("14:00", 60))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	_, err = f.uc.Execute(context.Background(), f.request("15:00", 60))
	assert.NoError(t, err)
}

func TestExecute_AdvanceLimit(t *testing.T) {
	f := newFixture(t)
	f.uc.policy.AdvanceBookingDays = 7

	req := f.request("14:00", 60)
	req.Date = testDate.AddDate(0, 0, 8)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}
