package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/booking"
	staffRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SpaBooking/pkg/ptr"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestBookingStore_CreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Bookings()
	staffID := uuid.New()

	_, err := store.Create(ctx, &domain.Booking{StaffID: staffID, BookingDate: testDate, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusPending})
	require.NoError(t, err)

	_, err = store.Create(ctx, &domain.Booking{StaffID: staffID, BookingDate: testDate, StartTime: "14:30", DurationMinutes: 60, Status: domain.StatusPending})
	assert.ErrorIs(t, err, bookingRepo.ErrSlotNotAvailable)

	// Стык интервалов допустим
	_, err = store.Create(ctx, &domain.Booking{StaffID: staffID, BookingDate: testDate, StartTime: "15:00", DurationMinutes: 60, Status: domain.StatusPending})
	assert.NoError(t, err)

	// Другой мастер не конфликтует
	_, err = store.Create(ctx, &domain.Booking{StaffID: uuid.New(), BookingDate: testDate, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusPending})
	assert.NoError(t, err)
}

func TestBookingStore_CancelledFreesSlot(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Bookings()
	staffID := uuid.New()

	created, err := store.Create(ctx, &domain.Booking{StaffID: staffID, BookingDate: testDate, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusPending})
	require.NoError(t, err)
	require.NoError(t, store.UpdateStatus(ctx, created.ID, domain.StatusCancelled))

	_, err = store.Create(ctx, &domain.Booking{StaffID: staffID, BookingDate: testDate, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusPending})
	assert.NoError(t, err)
}

func TestBookingStore_GetWithFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Bookings()
	staffID := uuid.New()
	customerID := uuid.New()

	late, err := store.Create(ctx, &domain.Booking{StaffID: staffID, CustomerID: customerID, BookingDate: testDate, StartTime: "18:00", DurationMinutes: 60, Status: domain.StatusConfirmed})
	require.NoError(t, err)
	early, err := store.Create(ctx, &domain.Booking{StaffID: staffID, CustomerID: uuid.New(), BookingDate: testDate, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusPending})
	require.NoError(t, err)
	done, err := store.Create(ctx, &domain.Booking{StaffID: staffID, CustomerID: customerID, BookingDate: testDate, StartTime: "12:00", DurationMinutes: 60, Status: domain.StatusPending})
	require.NoError(t, err)
	require.NoError(t, store.UpdateStatus(ctx, done.ID, domain.StatusCompleted))

	day := testDate
	active, err := store.GetWithFilter(ctx, domain.BookingsFilter{StaffIDs: []uuid.UUID{staffID}, StartDate: &day, EndDate: &day})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, early.ID, active[0].ID)
	assert.Equal(t, late.ID, active[1].ID)

	all, err := store.GetWithFilter(ctx, domain.BookingsFilter{CustomerID: &customerID, IncludeTerminal: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := store.GetWithFilter(ctx, domain.BookingsFilter{Status: ptr.Ptr(domain.StatusCompleted)})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID, completed[0].ID)

	byParticipant, err := store.GetWithFilter(ctx, domain.BookingsFilter{ParticipantID: &staffID})
	require.NoError(t, err)
	assert.Len(t, byParticipant, 2)
}

func TestBookingStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Bookings()

	created, err := store.Create(ctx, &domain.Booking{StaffID: uuid.New(), BookingDate: testDate, StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusPending})
	require.NoError(t, err)

	loaded, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	loaded.Status = domain.StatusCompleted

	again, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, again.Status)

	_, err = store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestBookingStore_LockStaffDaySerializes(t *testing.T) {
	ctx := context.Background()
	store := NewStore().Bookings()
	staffID := uuid.New()

	var inside int32
	var maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := store.LockStaffDay(ctx, staffID, testDate)
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestBookingStore_LockStaffDayRespectsContext(t *testing.T) {
	store := NewStore().Bookings()
	staffID := uuid.New()

	unlock, err := store.LockStaffDay(context.Background(), staffID, testDate)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = store.LockStaffDay(ctx, staffID, testDate)
	assert.ErrorIs(t, err, bookingRepo.ErrTransaction)

	unlock()

	// Другая дата берется независимо
	unlockOther, err := store.LockStaffDay(context.Background(), staffID, testDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	unlockOther()
}

func TestStaffStore(t *testing.T) {
	ctx := context.Background()
	root := NewStore()
	staff := root.Staff()

	top := &domain.StaffMember{ID: uuid.New(), Name: "A", Skills: []string{"thai"}, Rating: 4.9, ReviewCount: 10, Available: true, Verified: true}
	second := &domain.StaffMember{ID: uuid.New(), Name: "B", Skills: []string{"thai"}, Rating: 4.9, ReviewCount: 3, Available: true, Verified: true}
	unverified := &domain.StaffMember{ID: uuid.New(), Name: "C", Skills: []string{"thai"}, Rating: 5, Available: true}
	root.AddStaff(second)
	root.AddStaff(top)
	root.AddStaff(unverified)

	list, err := staff.List(ctx, domain.StaffFilter{Skill: ptr.Ptr("thai"), VerifiedOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, top.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	changed, err := staff.SetBlock(ctx, top.ID, testDate, "11:00", true)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = staff.SetBlock(ctx, top.ID, testDate, "11:00", true)
	require.NoError(t, err)
	assert.False(t, changed)

	blocks, err := staff.GetBlocks(ctx, []uuid.UUID{top.ID, second.ID}, testDate)
	require.NoError(t, err)
	assert.Len(t, blocks[top.ID], 1)
	assert.Empty(t, blocks[second.ID])

	changed, err = staff.SetBlock(ctx, top.ID, testDate, "11:00", false)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, staff.SetAvailable(ctx, top.ID, false))
	loaded, err := staff.GetByID(ctx, top.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Available)

	assert.ErrorIs(t, staff.SetVerified(ctx, uuid.New(), true), staffRepo.ErrStaffNotFound)
}
