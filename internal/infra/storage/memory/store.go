// Package memory хранилище в памяти процесса с теми же контрактами, что и PostgreSQL репозитории.
// Используется при store.driver = "memory" и в тестах usecase.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/catalog"
	staffRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Store строго консистентное хранилище: все чтения видят последние записи
type Store struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*domain.Booking
	staff    map[uuid.UUID]*domain.StaffMember
	blocks   map[uuid.UUID]map[string]domain.BlockedSlot
	services map[uuid.UUID]*domain.Service
	addons   map[string]*domain.Addon

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[uuid.UUID]*domain.Booking),
		staff:    make(map[uuid.UUID]*domain.StaffMember),
		blocks:   make(map[uuid.UUID]map[string]domain.BlockedSlot),
		services: make(map[uuid.UUID]*domain.Service),
		addons:   make(map[string]*domain.Addon),
		locks:    make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

// AddService добавляет услугу в справочник
func (s *Store) AddService(service *domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[service.ID] = cloneService(service)
}

// AddAddon добавляет дополнение в справочник
func (s *Store) AddAddon(addon *domain.Addon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *addon
	copied.ValidFor = append([]domain.ServiceCategory(nil), addon.ValidFor...)
	s.addons[addon.ID] = &copied
}

// AddStaff добавляет мастера
func (s *Store) AddStaff(member *domain.StaffMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[member.ID] = cloneStaff(member)
	for _, block := range member.BlockedSlots {
		s.addBlockLocked(member.ID, block)
	}
}

// BookingStore бронирования
type BookingStore struct{ *Store }

// StaffStore мастера и их блокировки
type StaffStore struct{ *Store }

// CatalogStore справочник услуг и дополнений
type CatalogStore struct{ *Store }

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingStore { return &BookingStore{s} }

// Staff возвращает репозиторий мастеров
func (s *Store) Staff() *StaffStore { return &StaffStore{s} }

// Catalog возвращает справочник
func (s *Store) Catalog() *CatalogStore { return &CatalogStore{s} }

// ---- TransactionManager ----

// Do выполняет fn. Атомарность обеспечивают мьютексы хранилища и LockStaffDay.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoSerializable выполняет fn
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoReadOnly выполняет fn
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---- Bookings ----

// LockStaffDay берет мьютекс пары (мастер, дата). Вызывающий обязан вызвать unlock.
func (s *BookingStore) LockStaffDay(ctx context.Context, staffID uuid.UUID, date time.Time) (func(), error) {
	key := fmt.Sprintf("staff-day:%s:%s", staffID, date.Format(domain.DateFormat))

	s.locksMu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.locksMu.Unlock()

	acquired := make(chan struct{})
	go func() {
		lock.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		var once sync.Once
		return func() { once.Do(lock.Unlock) }, nil
	case <-ctx.Done():
		// Освобождаем lock, как только горутина его получит
		go func() {
			<-acquired
			lock.Unlock()
		}()
		return nil, fmt.Errorf("%w: LockStaffDay - %v", bookingRepo.ErrTransaction, ctx.Err())
	}
}

// Create сохраняет бронирование. Пересечение с активной записью мастера отклоняется,
// как это делает exclusion constraint в PostgreSQL.
func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	candidate, err := booking.Interval()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", bookingRepo.ErrExecQuery, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !booking.IsTerminal() {
		for _, existing := range s.bookings {
			if existing.StaffID != booking.StaffID || existing.IsTerminal() || !domain.SameDay(existing.BookingDate, booking.BookingDate) {
				continue
			}
			interval, err := existing.Interval()
			if err != nil || interval.Overlaps(candidate) {
				return nil, fmt.Errorf("%w: Create - overlaps booking %s", bookingRepo.ErrSlotNotAvailable, existing.ID)
			}
		}
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := s.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	s.bookings[booking.ID] = cloneBooking(booking)
	return booking, nil
}

// GetByID получает бронирование по ID
func (s *BookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(booking), nil
}

// GetWithFilter получает бронирования по фильтру
func (s *BookingStore) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	staffSet := make(map[uuid.UUID]struct{}, len(filter.StaffIDs))
	for _, id := range filter.StaffIDs {
		staffSet[id] = struct{}{}
	}

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if len(staffSet) > 0 {
			if _, ok := staffSet[b.StaffID]; !ok {
				continue
			}
		}
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.ParticipantID != nil && b.CustomerID != *filter.ParticipantID && b.StaffID != *filter.ParticipantID {
			continue
		}
		day := domain.DateOnly(b.BookingDate)
		if filter.StartDate != nil && day.Before(domain.DateOnly(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && day.After(domain.DateOnly(*filter.EndDate)) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeTerminal && b.IsTerminal() {
			continue
		}
		result = append(result, cloneBooking(b))
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && domain.SameDay(*filter.StartDate, *filter.EndDate)
	sort.Slice(result, func(i, j int) bool {
		if singleDay {
			return result[i].StartTime.IsBefore(result[j].StartTime)
		}
		if !domain.SameDay(result[i].BookingDate, result[j].BookingDate) {
			return result[i].BookingDate.After(result[j].BookingDate)
		}
		return result[i].StartTime.IsAfter(result[j].StartTime)
	})

	return result, nil
}

// UpdateStatus обновляет статус бронирования
func (s *BookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: UpdateStatus - %q", bookingRepo.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	booking.Status = status
	booking.UpdatedAt = s.now()
	return nil
}

// ---- Staff ----

// List возвращает мастеров по фильтру, лучшие по рейтингу первыми
func (s *StaffStore) List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.StaffMember, 0, len(s.staff))
	for _, member := range s.staff {
		if filter.Skill != nil && !member.HasSkill(*filter.Skill) {
			continue
		}
		if filter.VerifiedOnly && !member.Verified {
			continue
		}
		if filter.AvailableOnly && !member.Available {
			continue
		}
		result = append(result, cloneStaff(member))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Rating != result[j].Rating {
			return result[i].Rating > result[j].Rating
		}
		return result[i].ReviewCount > result[j].ReviewCount
	})

	return result, nil
}

// GetByID получает мастера по ID
func (s *StaffStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.staff[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return cloneStaff(member), nil
}

// GetBlocks возвращает блокировки мастеров на дату
func (s *StaffStore) GetBlocks(ctx context.Context, staffIDs []uuid.UUID, date time.Time) (map[uuid.UUID][]domain.BlockedSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[uuid.UUID][]domain.BlockedSlot, len(staffIDs))
	for _, id := range staffIDs {
		for _, block := range s.blocks[id] {
			if domain.SameDay(block.Date, date) {
				result[id] = append(result[id], block)
			}
		}
		sort.Slice(result[id], func(i, j int) bool {
			return result[id][i].StartTime.IsBefore(result[id][j].StartTime)
		})
	}
	return result, nil
}

// SetBlock добавляет или снимает блокировку. Возвращает true, если состояние изменилось.
func (s *StaffStore) SetBlock(ctx context.Context, staffID uuid.UUID, date time.Time, start types.TimeString, blocked bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := domain.BlockedSlot{Date: domain.DateOnly(date), StartTime: start}
	_, exists := s.blocks[staffID][block.Key()]

	switch {
	case blocked && !exists:
		s.addBlockLocked(staffID, block)
		return true, nil
	case !blocked && exists:
		delete(s.blocks[staffID], block.Key())
		return true, nil
	}
	return false, nil
}

// SetAvailable переключает глобальную доступность мастера
func (s *StaffStore) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, ok := s.staff[id]
	if !ok {
		return staffRepo.ErrStaffNotFound
	}
	member.Available = available
	return nil
}

// SetVerified переключает признак верификации мастера
func (s *StaffStore) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, ok := s.staff[id]
	if !ok {
		return staffRepo.ErrStaffNotFound
	}
	member.Verified = verified
	return nil
}

// ---- Catalog ----

// GetService получает услугу
func (s *CatalogStore) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	service, ok := s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return cloneService(service), nil
}

// ListServices возвращает все услуги
func (s *CatalogStore) ListServices(ctx context.Context) ([]*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Service, 0, len(s.services))
	for _, service := range s.services {
		result = append(result, cloneService(service))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Title < result[j].Title
	})
	return result, nil
}

// GetAddons получает дополнения по ID
func (s *CatalogStore) GetAddons(ctx context.Context, ids []string) (map[string]*domain.Addon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*domain.Addon, len(ids))
	for _, id := range ids {
		if addon, ok := s.addons[id]; ok {
			copied := *addon
			result[id] = &copied
		}
	}
	return result, nil
}

func (s *Store) addBlockLocked(staffID uuid.UUID, block domain.BlockedSlot) {
	block.Date = domain.DateOnly(block.Date)
	if s.blocks[staffID] == nil {
		s.blocks[staffID] = make(map[string]domain.BlockedSlot)
	}
	s.blocks[staffID][block.Key()] = block
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	copied := *b
	copied.Addons = append([]string(nil), b.Addons...)
	return &copied
}

func cloneStaff(m *domain.StaffMember) *domain.StaffMember {
	copied := *m
	copied.Skills = append([]string(nil), m.Skills...)
	copied.BlockedSlots = nil
	return &copied
}

func cloneService(s *domain.Service) *domain.Service {
	copied := *s
	copied.Prices = make(map[int]decimal.Decimal, len(s.Prices))
	for d, p := range s.Prices {
		copied.Prices[d] = p
	}
	return &copied
}
