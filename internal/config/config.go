// Package config загрузка конфигурации сервиса: TOML файл, .env и переменные окружения
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Store     StoreConfig     `toml:"store"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StoreConfig выбор хранилища
type StoreConfig struct {
	Driver   string `toml:"driver"`    // memory | postgres
	SeedFile string `toml:"seed_file"` // каталог и мастера для memory
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig кэш отображения доступности
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
	Prefix   string `toml:"prefix"`
}

// KafkaConfig уведомления о бронированиях
type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	WriteTimeout int      `toml:"write_timeout"` // секунды
}

// BookingConfig сетка слотов и окно бронирования
type BookingConfig struct {
	FirstSlotHour      int    `toml:"first_slot_hour"`
	LastSlotHour       int    `toml:"last_slot_hour"`
	AdvanceBookingDays int    `toml:"advance_booking_days"`
	MinNoticeMinutes   int    `toml:"min_notice_minutes"`
	Timezone           string `toml:"timezone"`
}

// RateLimitConfig ограничение создания бронирований
type RateLimitConfig struct {
	Enabled   bool `toml:"enabled"`
	PerMinute int  `toml:"per_minute"`
	Burst     int  `toml:"burst"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения поверх него
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// .env не обязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Store: StoreConfig{Driver: StoreMemory},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{TTL: 60, Prefix: "spa"},
		Kafka: KafkaConfig{WriteTimeout: 5},
		Booking: BookingConfig{
			FirstSlotHour:      domain.DefaultFirstSlotHour,
			LastSlotHour:       domain.DefaultLastSlotHour,
			AdvanceBookingDays: domain.DefaultAdvanceBookingDays,
			MinNoticeMinutes:   domain.DefaultMinNoticeMinutes,
			Timezone:           "Asia/Bangkok",
		},
		RateLimit: RateLimitConfig{Enabled: true, PerMinute: 30, Burst: 5},
		Logs:      LogsConfig{Level: "info"},
		Metrics:   MetricsConfig{Path: "/metrics", ServiceName: "spa_booking"},
	}
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}
	setBool := func(key string, dst *bool) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a bool", ErrInvalidConfig, key, v)
		}
		*dst = b
		return nil
	}

	setString("STORE_DRIVER", &c.Store.Driver)
	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("LOG_LEVEL", &c.Logs.Level)
	setString("BOOKING_TIMEZONE", &c.Booking.Timezone)

	if brokers, ok := os.LookupEnv("KAFKA_BROKERS"); ok && brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}

	for key, dst := range map[string]*int{
		"HTTP_PORT": &c.Server.HTTPPort,
		"DB_PORT":   &c.Database.Port,
	} {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*bool{
		"REDIS_ENABLED":   &c.Redis.Enabled,
		"KAFKA_ENABLED":   &c.Kafka.Enabled,
		"METRICS_ENABLED": &c.Metrics.Enabled,
	} {
		if err := setBool(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: store.driver must be %q or %q, got %q", ErrInvalidConfig, StoreMemory, StorePostgres, c.Store.Driver)
	}

	b := c.Booking
	if b.FirstSlotHour < 0 || b.LastSlotHour > 23 || b.FirstSlotHour > b.LastSlotHour {
		return fmt.Errorf("%w: booking slot hours %d..%d", ErrInvalidConfig, b.FirstSlotHour, b.LastSlotHour)
	}
	if b.AdvanceBookingDays < 0 || b.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking window values must not be negative", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(b.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka.brokers is required when kafka is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	return nil
}

// Policy собирает правила бронирования
func (c *Config) Policy() (domain.BookingPolicy, error) {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	return domain.BookingPolicy{
		FirstSlotHour:      c.Booking.FirstSlotHour,
		LastSlotHour:       c.Booking.LastSlotHour,
		AdvanceBookingDays: c.Booking.AdvanceBookingDays,
		MinNoticeMinutes:   c.Booking.MinNoticeMinutes,
		Location:           loc,
	}, nil
}
