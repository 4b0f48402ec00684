package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SpaBooking/internal/config"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	cache "github.com/m04kA/SMC-SpaBooking/internal/infra/cache/availability"
	bookingRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/migrator"
	staffRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SpaBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SpaBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaBooking/pkg/metrics"
	"github.com/m04kA/SMC-SpaBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Общий набор методов PostgreSQL и memory реализаций

type bookingStore interface {
	LockStaffDay(ctx context.Context, staffID uuid.UUID, date time.Time) (func(), error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
}

type staffStore interface {
	List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
	GetBlocks(ctx context.Context, staffIDs []uuid.UUID, date time.Time) (map[uuid.UUID][]domain.BlockedSlot, error)
	SetBlock(ctx context.Context, staffID uuid.UUID, date time.Time, start types.TimeString, blocked bool) (bool, error)
	SetAvailable(ctx context.Context, id uuid.UUID, available bool) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

type catalogStore interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetAddons(ctx context.Context, ids []string) (map[string]*domain.Addon, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type availabilityCache interface {
	GetStaff(ctx context.Context, date time.Time, query string) ([]*domain.StaffMember, string, bool, error)
	SetStaff(ctx context.Context, date time.Time, version, query string, staff []*domain.StaffMember) error
	Invalidate(ctx context.Context, date time.Time) error
	InvalidateAll(ctx context.Context) error
}

type bookingNotifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
	StatusChanged(ctx context.Context, booking *domain.Booking, from, to domain.BookingStatus) error
	Close() error
}

type storage struct {
	bookings bookingStore
	staff    staffStore
	catalog  catalogStore
	tx       txManager
	close    func() error
}

// openStorage выбирает хранилище по store.driver
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stop <-chan struct{}) (*storage, error) {
	if cfg.Store.Driver == config.StoreMemory {
		store := memory.NewStore()
		if cfg.Store.SeedFile != "" {
			if err := store.LoadSeed(cfg.Store.SeedFile); err != nil {
				return nil, err
			}
			log.Info("Memory store seeded from %s", cfg.Store.SeedFile)
		}
		log.Warn("Using in-memory store: data is lost on restart")
		return &storage{
			bookings: store.Bookings(),
			staff:    store.Staff(),
			catalog:  store.Catalog(),
			tx:       store,
			close:    func() error { return nil },
		}, nil
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		mg, err := migrator.New(db, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := mg.Up(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	// Обертка с метриками; при выключенных метриках работает как обычный *sql.DB
	var wrapped *dbmetrics.DB
	if m != nil {
		wrapped = dbmetrics.WrapWithDefault(db, m, stop)
		log.Info("Database metrics collection started")
	} else {
		wrapped = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		bookings: bookingRepo.NewRepository(wrapped),
		staff:    staffRepo.NewRepository(wrapped),
		catalog:  catalogRepo.NewRepository(wrapped),
		tx:       txmanager.NewTransactionManager(wrapped),
		close:    db.Close,
	}, nil
}

// openCache Redis кэш отображения доступности или заглушка
func openCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (availabilityCache, func() error, error) {
	if !cfg.Enabled {
		log.Info("Availability cache disabled")
		return cache.Nop{}, func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Addr, cfg.TTL)
	return cache.NewCache(rdb, time.Duration(cfg.TTL)*time.Second, cfg.Prefix), rdb.Close, nil
}

// openNotifier Kafka издатель событий или запись в лог
func openNotifier(cfg config.KafkaConfig, log *logger.Logger) bookingNotifier {
	if !cfg.Enabled {
		log.Info("Kafka disabled, booking events are written to the log")
		return notifier.NewLogNotifier(log)
	}

	log.Info("Kafka notifier enabled (brokers=%v)", cfg.Brokers)
	return notifier.NewKafkaNotifier(
		notifier.NewKafkaWriter(cfg.Brokers),
		time.Duration(cfg.WriteTimeout)*time.Second,
	)
}
