package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkSlotHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/check_slot"
	createBookingHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/create_booking"
	findAvailableStaffHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/find_available_staff"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/get_booking"
	getBookingPolicyHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/get_booking_policy"
	listBookingsHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/list_services"
	listStaffHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/list_staff"
	toggleBlockHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/toggle_block"
	transitionBookingHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/transition_booking"
	updateStaffHandler "github.com/m04kA/SMC-SpaBooking/internal/api/handlers/update_staff"
	"github.com/m04kA/SMC-SpaBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBooking/internal/config"
	"github.com/m04kA/SMC-SpaBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SpaBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SpaBooking/internal/service/catalog"
	staffService "github.com/m04kA/SMC-SpaBooking/internal/service/staff"
	createBookingUC "github.com/m04kA/SMC-SpaBooking/internal/usecase/create_booking"
	findAvailableStaffUC "github.com/m04kA/SMC-SpaBooking/internal/usecase/find_available_staff"
	getAvailableSlotsUC "github.com/m04kA/SMC-SpaBooking/internal/usecase/get_available_slots"
	toggleBlockUC "github.com/m04kA/SMC-SpaBooking/internal/usecase/toggle_block"
	transitionBookingUC "github.com/m04kA/SMC-SpaBooking/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaBooking/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SpaBooking...")
	log.Info("Configuration loaded from %s (store=%s)", configPath, cfg.Store.Driver)

	policy, err := cfg.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	recorder := metrics.NewRecorder(metricsCollector)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	// Хранилище, кэш и уведомления
	store, err := openStorage(startCtx, cfg, log, metricsCollector, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	availabilityCache, closeCache, err := openCache(startCtx, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to cache: %v", err)
	}
	defer closeCache()

	events := openNotifier(cfg.Kafka, log)
	defer events.Close()

	// Инициализируем сервисы
	resolver := availability.NewResolver(store.staff, store.bookings, store.catalog, availabilityCache, log)
	bookingSvc := bookingsService.NewService(store.bookings, log)
	staffSvc := staffService.NewService(store.staff, availabilityCache, log)
	catalogSvc := catalogService.NewService(store.catalog, policy, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.staff,
		store.catalog,
		resolver,
		store.tx,
		events,
		availabilityCache,
		recorder,
		policy,
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		store.bookings,
		resolver,
		store.tx,
		events,
		availabilityCache,
		recorder,
		log,
	)
	toggleBlockUseCase := toggleBlockUC.NewUseCase(
		store.staff,
		store.bookings,
		resolver,
		store.tx,
		availabilityCache,
		policy,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(resolver, policy, log)
	findAvailableStaffUseCase := findAvailableStaffUC.NewUseCase(resolver, store.catalog, policy, log)

	// Инициализируем handlers
	findAvailableStaff := findAvailableStaffHandler.NewHandler(findAvailableStaffUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(resolver, log)
	getBookingPolicy := getBookingPolicyHandler.NewHandler(catalogSvc)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)
	toggleBlock := toggleBlockHandler.NewHandler(toggleBlockUseCase, log)
	updateStaff := updateStaffHandler.NewHandler(staffSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог и правила бронирования
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-policy", getBookingPolicy.Handle).Methods(http.MethodGet)

	// Доступность (только для отображения, запись перепроверяет)
	api.HandleFunc("/services/{serviceId}/available-staff", findAvailableStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/availability", checkSlot.Handle).Methods(http.MethodGet)

	// Список мастеров: администратор видит и неверифицированных
	optional := api.PathPrefix("").Subrouter()
	optional.Use(middleware.OptionalAuth)
	optional.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	var createHandler http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
		createHandler = limiter.Middleware(createHandler)
		log.Info("Rate limit on booking creation: %d/min, burst %d", cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", createHandler).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/transitions", transitionBooking.Handle).Methods(http.MethodPost)

	// --- Календарь и статус мастера ---
	protected.HandleFunc("/staff/{staffId}/blocks", toggleBlock.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}", updateStaff.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
