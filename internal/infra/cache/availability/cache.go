// Package availability кэш ответов findAvailableStaff в Redis.
// Кэш только для отображения: commit никогда его не читает.
// Ключи версионируются по дате; любая мутация календаря на дату поднимает версию,
// и старые записи просто истекают по TTL.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

const defaultTTL = 30 * time.Second

// Cache Redis кэш доступных мастеров
type Cache struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewCache создает кэш. ttl <= 0 заменяется значением по умолчанию.
func NewCache(rdb redis.UniversalClient, ttl time.Duration, prefix string) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if prefix == "" {
		prefix = "spa:availability"
	}
	return &Cache{rdb: rdb, ttl: ttl, prefix: prefix}
}

type cachedStaff struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Skills       []string  `json:"skills"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	LocationBase string    `json:"location_base"`
}

// GetStaff возвращает закэшированный ответ и версию даты, под которой его искали.
// found=false при промахе. Версию нужно передать в SetStaff: ответ, посчитанный
// до мутации календаря, не должен лечь под версию после нее.
func (c *Cache) GetStaff(ctx context.Context, date time.Time, query string) ([]*domain.StaffMember, string, bool, error) {
	version, err := c.version(ctx, date)
	if err != nil {
		return nil, "", false, err
	}

	raw, err := c.rdb.Get(ctx, c.entryKey(date, version, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("%w: GetStaff - %v", ErrCache, err)
	}

	var entries []cachedStaff
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, version, false, fmt.Errorf("%w: GetStaff - decode: %v", ErrCache, err)
	}

	staff := make([]*domain.StaffMember, 0, len(entries))
	for _, e := range entries {
		staff = append(staff, &domain.StaffMember{
			ID:           e.ID,
			Name:         e.Name,
			Skills:       e.Skills,
			Rating:       e.Rating,
			ReviewCount:  e.ReviewCount,
			Available:    true,
			Verified:     true,
			LocationBase: e.LocationBase,
		})
	}
	return staff, version, true, nil
}

// SetStaff сохраняет ответ под версией, полученной из GetStaff.
// Если версия с тех пор поднялась, запись недостижима и истечет по TTL.
func (c *Cache) SetStaff(ctx context.Context, date time.Time, version, query string, staff []*domain.StaffMember) error {
	if version == "" {
		return fmt.Errorf("%w: SetStaff - empty version", ErrCache)
	}

	entries := make([]cachedStaff, 0, len(staff))
	for _, s := range staff {
		entries = append(entries, cachedStaff{
			ID:           s.ID,
			Name:         s.Name,
			Skills:       s.Skills,
			Rating:       s.Rating,
			ReviewCount:  s.ReviewCount,
			LocationBase: s.LocationBase,
		})
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: SetStaff - encode: %v", ErrCache, err)
	}

	if err := c.rdb.Set(ctx, c.entryKey(date, version, query), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetStaff - %v", ErrCache, err)
	}
	return nil
}

// Invalidate поднимает версию даты; все ответы на эту дату становятся недостижимы
func (c *Cache) Invalidate(ctx context.Context, date time.Time) error {
	if err := c.rdb.Incr(ctx, c.versionKey(date)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCache, err)
	}
	return nil
}

// InvalidateAll поднимает глобальную версию (смена доступности или верификации мастера)
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, c.globalKey()).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateAll - %v", ErrCache, err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context, date time.Time) (string, error) {
	values, err := c.rdb.MGet(ctx, c.globalKey(), c.versionKey(date)).Result()
	if err != nil {
		return "", fmt.Errorf("%w: version - %v", ErrCache, err)
	}
	return fmt.Sprintf("%v.%v", versionOrZero(values[0]), versionOrZero(values[1])), nil
}

func versionOrZero(v interface{}) interface{} {
	if v == nil {
		return "0"
	}
	return v
}

func (c *Cache) globalKey() string {
	return c.prefix + ":version"
}

func (c *Cache) versionKey(date time.Time) string {
	return fmt.Sprintf("%s:version:%s", c.prefix, date.Format(domain.DateFormat))
}

func (c *Cache) entryKey(date time.Time, version, query string) string {
	return fmt.Sprintf("%s:%s:v%s:%s", c.prefix, date.Format(domain.DateFormat), version, query)
}

// Nop кэш-заглушка, когда Redis выключен
type Nop struct{}

// GetStaff всегда промах
func (Nop) GetStaff(ctx context.Context, date time.Time, query string) ([]*domain.StaffMember, string, bool, error) {
	return nil, "", false, nil
}

// SetStaff ничего не делает
func (Nop) SetStaff(ctx context.Context, date time.Time, version, query string, staff []*domain.StaffMember) error {
	return nil
}

// Invalidate ничего не делает
func (Nop) Invalidate(ctx context.Context, date time.Time) error { return nil }

// InvalidateAll ничего не делает
func (Nop) InvalidateAll(ctx context.Context) error { return nil }
