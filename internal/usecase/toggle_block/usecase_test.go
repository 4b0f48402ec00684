package toggle_block

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	cache "github.com/m04kA/SMC-SpaBooking/internal/infra/cache/availability"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SpaBooking/internal/service/availability"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type failingTx struct {
	err error
}

func (f failingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return f.err
}

type fixture struct {
	store   *memory.Store
	uc      *UseCase
	staffID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	staffID := uuid.New()
	store.AddStaff(&domain.StaffMember{ID: staffID, Name: "A", Skills: []string{"thai"}, Available: true, Verified: true})

	log := logger.NewNop()
	resolver := availability.NewResolver(store.Staff(), store.Bookings(), store.Catalog(), cache.Nop{}, log)
	uc := NewUseCase(store.Staff(), store.Bookings(), resolver, store, cache.Nop{}, domain.DefaultBookingPolicy(), log)
	uc.timeProvider = fixedTime{now: testDate.Add(8 * time.Hour)}

	return &fixture{store: store, uc: uc, staffID: staffID}
}

func (f *fixture) request(start string, blocked bool) *Request {
	return &Request{
		StaffID:   f.staffID,
		ActorID:   f.staffID,
		ActorRole: domain.RoleStaff,
		Date:      testDate,
		StartTime: types.TimeString(start),
		Blocked:   blocked,
	}
}

func TestExecute_BlockAndUnblock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, f.request("12:00", true))
	require.NoError(t, err)
	assert.True(t, resp.Changed)

	again, err := f.uc.Execute(ctx, f.request("12:00", true))
	require.NoError(t, err)
	assert.False(t, again.Changed)

	blocks, err := f.store.Staff().GetBlocks(ctx, []uuid.UUID{f.staffID}, testDate)
	require.NoError(t, err)
	assert.Len(t, blocks[f.staffID], 1)

	resp, err = f.uc.Execute(ctx, f.request("12:00", false))
	require.NoError(t, err)
	assert.True(t, resp.Changed)

	blocks, err = f.store.Staff().GetBlocks(ctx, []uuid.UUID{f.staffID}, testDate)
	require.NoError(t, err)
	assert.Empty(t, blocks[f.staffID])
}

func TestExecute_CannotBlockBookedSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.Bookings().Create(ctx, &domain.Booking{
		StaffID:         f.staffID,
		CustomerID:      uuid.New(),
		BookingDate:     testDate,
		StartTime:       "11:00",
		DurationMinutes: 90,
		Status:          domain.StatusConfirmed,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, f.request("12:00", true))
	assert.ErrorIs(t, err, ErrSlotBooked)
}

func TestExecute_Rules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *Request)
		expected error
	}{
		{"other staff", func(req *Request) { req.ActorID = uuid.New() }, ErrAccessDenied},
		{"customer", func(req *Request) { req.ActorRole = domain.RoleCustomer }, ErrAccessDenied},
		{"half hour", func(req *Request) { req.StartTime = "12:30" }, ErrInvalidTime},
		{"past date", func(req *Request) { req.Date = testDate.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"bad time", func(req *Request) { req.StartTime = "noon" }, ErrInvalidInput},
		{"unknown staff", func(req *Request) { id := uuid.New(); req.StaffID, req.ActorID = id, id }, ErrStaffNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request("12:00", true)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExecute_TransactionFailureIsStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.uc.txManager = failingTx{err: fmt.Errorf("%w: begin: too many connections", txmanager.ErrTransaction)}

	_, err := f.uc.Execute(context.Background(), f.request("14:00", true))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, txmanager.ErrTransaction)
}
