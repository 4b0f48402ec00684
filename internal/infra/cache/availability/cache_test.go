package availability

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb, time.Minute, "test:availability"), mr
}

func testStaff() []*domain.StaffMember {
	return []*domain.StaffMember{
		{ID: uuid.New(), Name: "Ploy", Skills: []string{"thai"}, Rating: 4.9, ReviewCount: 31, LocationBase: "Kata"},
		{ID: uuid.New(), Name: "Nok", Skills: []string{"thai", "oil"}, Rating: 4.7, ReviewCount: 12, LocationBase: "Patong"},
	}
}

func TestCache_Keys(t *testing.T) {
	c := NewCache(nil, 0, "")
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, defaultTTL, c.ttl)
	assert.Equal(t, "spa:availability:version", c.globalKey())
	assert.Equal(t, "spa:availability:version:2025-03-10", c.versionKey(date))
	assert.Equal(t, "spa:availability:2025-03-10:v1.4:svc:14:00:60", c.entryKey(date, "1.4", "svc:14:00:60"))
}

func TestCache_RoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	staff := testStaff()

	got, version, found, err := c.GetStaff(ctx, date, "q")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
	assert.Equal(t, "0.0", version)

	require.NoError(t, c.SetStaff(ctx, date, version, "q", staff))
	assert.Equal(t, time.Minute, mr.TTL(c.entryKey(date, version, "q")))

	got, version, found, err = c.GetStaff(ctx, date, "q")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "0.0", version)
	require.Len(t, got, 2)
	for i, s := range got {
		assert.Equal(t, staff[i].ID, s.ID)
		assert.Equal(t, staff[i].Name, s.Name)
		assert.Equal(t, staff[i].Skills, s.Skills)
		assert.Equal(t, staff[i].Rating, s.Rating)
		assert.Equal(t, staff[i].ReviewCount, s.ReviewCount)
		assert.Equal(t, staff[i].LocationBase, s.LocationBase)
		assert.True(t, s.Available)
		assert.True(t, s.Verified)
	}
}

func TestCache_EmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, version, _, err := c.GetStaff(ctx, date, "q")
	require.NoError(t, err)
	require.NoError(t, c.SetStaff(ctx, date, version, "q", []*domain.StaffMember{}))

	got, _, found, err := c.GetStaff(ctx, date, "q")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
}

func TestCache_InvalidateHidesOnlyThatDate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	for _, d := range []time.Time{monday, tuesday} {
		_, version, _, err := c.GetStaff(ctx, d, "q")
		require.NoError(t, err)
		require.NoError(t, c.SetStaff(ctx, d, version, "q", testStaff()))
	}

	require.NoError(t, c.Invalidate(ctx, monday))

	_, version, found, err := c.GetStaff(ctx, monday, "q")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "0.1", version)

	_, version, found, err = c.GetStaff(ctx, tuesday, "q")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0.0", version)
}

func TestCache_InvalidateAllHidesEveryDate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{monday, monday.AddDate(0, 0, 1), monday.AddDate(0, 0, 7)}

	for _, d := range dates {
		_, version, _, err := c.GetStaff(ctx, d, "q")
		require.NoError(t, err)
		require.NoError(t, c.SetStaff(ctx, d, version, "q", testStaff()))
	}

	require.NoError(t, c.InvalidateAll(ctx))

	for _, d := range dates {
		_, version, found, err := c.GetStaff(ctx, d, "q")
		require.NoError(t, err)
		assert.False(t, found, d.Format(domain.DateFormat))
		assert.Equal(t, "1.0", version)
	}
}

func TestCache_SetAfterInvalidateIsNotServed(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// Промах, затем коммит на эту дату, затем запись ответа, посчитанного до коммита
	_, version, found, err := c.GetStaff(ctx, date, "q")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.Invalidate(ctx, date))
	require.NoError(t, c.SetStaff(ctx, date, version, "q", testStaff()))

	got, current, found, err := c.GetStaff(ctx, date, "q")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
	assert.NotEqual(t, version, current)
}

func TestCache_SetRequiresVersion(t *testing.T) {
	c, _ := newTestCache(t)
	err := c.SetStaff(context.Background(), time.Now(), "", "q", testStaff())
	assert.ErrorIs(t, err, ErrCache)
}

func TestCache_RedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	mr.Close()

	_, version, found, err := c.GetStaff(ctx, time.Now(), "q")
	assert.ErrorIs(t, err, ErrCache)
	assert.False(t, found)
	assert.Empty(t, version)
	assert.ErrorIs(t, c.Invalidate(ctx, time.Now()), ErrCache)
	assert.ErrorIs(t, c.InvalidateAll(ctx), ErrCache)
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c Nop
	date := time.Now()

	require.NoError(t, c.SetStaff(ctx, date, "0.0", "q", nil))
	staff, version, found, err := c.GetStaff(ctx, date, "q")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, staff)
	assert.Empty(t, version)
	assert.NoError(t, c.Invalidate(ctx, date))
	assert.NoError(t, c.InvalidateAll(ctx))
}
