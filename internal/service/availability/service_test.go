package availability

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
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaBooking/pkg/ptr"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	resolver *Resolver
	service  *domain.Service
}

func newFixture(t *testing.T, c Cache) *fixture {
	t.Helper()
	store := memory.NewStore()
	service := &domain.Service{
		ID:            uuid.New(),
		Title:         "Thai massage",
		Category:      domain.CategoryMassage,
		RequiredSkill: "thai",
		StaffRequired: 1,
		Prices: map[int]decimal.Decimal{
			60: decimal.NewFromInt(500),
			90: decimal.NewFromInt(700),
		},
	}
	store.AddService(service)

	if c == nil {
		c = cache.Nop{}
	}
	return &fixture{
		store:    store,
		resolver: NewResolver(store.Staff(), store.Bookings(), store.Catalog(), c, logger.NewNop()),
		service:  service,
	}
}

func (f *fixture) addStaff(name string, rating float64, reviews int, available, verified bool, skills ...string) *domain.StaffMember {
	member := &domain.StaffMember{
		ID:          uuid.New(),
		Name:        name,
		Skills:      skills,
		Rating:      rating,
		ReviewCount: reviews,
		Available:   available,
		Verified:    verified,
	}
	f.store.AddStaff(member)
	return member
}

func (f *fixture) book(t *testing.T, staffID uuid.UUID, start string, duration int, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	booking, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		ServiceID:       f.service.ID,
		StaffID:         staffID,
		CustomerID:      uuid.New(),
		BookingDate:     testDate,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          status,
	})
	require.NoError(t, err)
	return booking
}

func slot(start string, duration int) domain.SlotRequest {
	return domain.SlotRequest{Date: testDate, StartTime: types.TimeString(start), DurationMinutes: duration}
}

func ids(members []*domain.StaffMember) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}

func TestFindAvailableStaff_FiltersAndSorts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	top := f.addStaff("Top", 4.9, 120, true, true, "thai", "oil")
	tieWinner := f.addStaff("Tie winner", 4.7, 50, true, true, "thai")
	tieLoser := f.addStaff("Tie loser", 4.7, 10, true, true, "thai")
	f.addStaff("Switched off", 5.0, 300, false, true, "thai")
	f.addStaff("Unverified", 5.0, 300, true, false, "thai")
	f.addStaff("Nails only", 5.0, 300, true, true, "nails")

	staff, err := f.resolver.FindAvailableStaff(ctx, f.service.ID, slot("14:00", 60))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{top.ID, tieWinner.ID, tieLoser.ID}, ids(staff))
}

func TestFindAvailableStaff_UnavailableStaffExcludedRegardlessOfCalendar(t *testing.T) {
	f := newFixture(t, nil)
	off := f.addStaff("B", 5.0, 10, false, true, "thai")

	staff, err := f.resolver.FindAvailableStaff(context.Background(), f.service.ID, slot("10:00", 60))
	require.NoError(t, err)
	assert.NotContains(t, ids(staff), off.ID)
	assert.Empty(t, staff)
}

func TestFindAvailableStaff_OverlapScenario(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.addStaff("A", 4.8, 20, true, true, "thai")
	f.book(t, a.ID, "14:00", 60, domain.StatusConfirmed)

	tests := []struct {
		name     string
		slot     domain.SlotRequest
		expected bool
	}{
		{"same slot", slot("14:00", 60), false},
		{"13:00-14:30", slot("13:00", 90), false},
		{"15:00-16:00", slot("15:00", 60), true},
		{"13:00-14:00", slot("13:00", 60), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			staff, err := f.resolver.FindAvailableStaff(ctx, f.service.ID, tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, len(staff) == 1)

			free, err := f.resolver.IsSlotAvailable(ctx, a.ID, tt.slot, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, free)
		})
	}
}

func TestFindAvailableStaff_TerminalBookingsFreeTheSlot(t *testing.T) {
	f := newFixture(t, nil)
	a := f.addStaff("A", 4.8, 20, true, true, "thai")
	f.book(t, a.ID, "14:00", 60, domain.StatusCancelled)
	f.book(t, a.ID, "16:00", 60, domain.StatusDeclined)

	staff, err := f.resolver.FindAvailableStaff(context.Background(), f.service.ID, slot("14:00", 60))
	require.NoError(t, err)
	assert.Len(t, staff, 1)
}

func TestFindAvailableStaff_BlockedSlot(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.addStaff("A", 4.8, 20, true, true, "thai")
	_, err := f.store.Staff().SetBlock(ctx, a.ID, testDate, "12:00", true)
	require.NoError(t, err)

	staff, err := f.resolver.FindAvailableStaff(ctx, f.service.ID, slot("11:00", 90))
	require.NoError(t, err)
	assert.Empty(t, staff)

	free, err := f.resolver.IsSlotAvailable(ctx, a.ID, slot("13:00", 60), nil)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestFindAvailableStaff_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.resolver.FindAvailableStaff(ctx, uuid.New(), slot("14:00", 60))
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.resolver.FindAvailableStaff(ctx, f.service.ID, slot("14:00", 45))
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestIsSlotAvailable_ExcludesOwnBooking(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.addStaff("A", 4.8, 20, true, true, "thai")
	own := f.book(t, a.ID, "14:00", 60, domain.StatusPending)

	free, err := f.resolver.IsSlotAvailable(ctx, a.ID, slot("14:00", 60), nil)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = f.resolver.IsSlotAvailable(ctx, a.ID, slot("14:00", 60), ptr.Ptr(own.ID))
	require.NoError(t, err)
	assert.True(t, free)

	_, err = f.resolver.IsSlotAvailable(ctx, uuid.New(), slot("14:00", 60), nil)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

type recordingCache struct {
	stored      map[string][]*domain.StaffMember
	version     string
	setVersions []string
	gets        int
	afterGet    func()
}

func (c *recordingCache) GetStaff(ctx context.Context, date time.Time, query string) ([]*domain.StaffMember, string, bool, error) {
	c.gets++
	version := c.version
	staff, ok := c.stored[version+":"+query]
	if c.afterGet != nil {
		c.afterGet()
	}
	return staff, version, ok, nil
}

func (c *recordingCache) SetStaff(ctx context.Context, date time.Time, version, query string, staff []*domain.StaffMember) error {
	c.setVersions = append(c.setVersions, version)
	c.stored[version+":"+query] = staff
	return nil
}

func TestFindAvailableStaff_UsesCacheForDisplayOnly(t *testing.T) {
	c := &recordingCache{stored: map[string][]*domain.StaffMember{}, version: "0.0"}
	f := newFixture(t, c)
	ctx := context.Background()
	a := f.addStaff("A", 4.8, 20, true, true, "thai")

	first, err := f.resolver.FindAvailableStaff(ctx, f.service.ID, slot("14:00", 60))
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Запись появилась в обход кэша: отображение может устареть, проверка слота - нет
	f.book(t, a.ID, "14:00", 60, domain.StatusPending)

	second, err := f.resolver.FindAvailableStaff(ctx, f.service.ID, slot("14:00", 60))
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 2, c.gets)

	free, err := f.resolver.IsSlotAvailable(ctx, a.ID, slot("14:00", 60), nil)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestFindAvailableStaff_WritesCacheUnderVersionReadBeforeLoad(t *testing.T) {
	c := &recordingCache{stored: map[string][]*domain.StaffMember{}, version: "0.0"}
	f := newFixture(t, c)
	ctx := context.Background()
	a := f.addStaff("A", 4.8, 20, true, true, "thai")

	// Календарь меняется, пока ответ считается
	c.afterGet = func() {
		c.afterGet = nil
		c.version = "0.1"
	}

	first, err := f.resolver.FindAvailableStaff(ctx, f.service.ID, slot("14:00", 60))
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, []string{"0.0"}, c.setVersions)

	f.book(t, a.ID, "14:00", 60, domain.StatusPending)

	// Ответ под старой версией недостижим, список строится заново
	second, err := f.resolver.FindAvailableStaff(ctx, f.service.ID, slot("14:00", 60))
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, []string{"0.0", "0.1"}, c.setVersions)
}

func TestFindAvailableStaff_SkipsCacheWriteWithoutVersion(t *testing.T) {
	c := &recordingCache{stored: map[string][]*domain.StaffMember{}}
	f := newFixture(t, c)
	f.addStaff("A", 4.8, 20, true, true, "thai")

	_, err := f.resolver.FindAvailableStaff(context.Background(), f.service.ID, slot("14:00", 60))
	require.NoError(t, err)
	assert.Empty(t, c.setVersions)
}
