package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Tracing  TracingConfig  `toml:"tracing"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Feed     FeedConfig     `toml:"feed"`
	Lab      LabConfig      `toml:"lab"`
	Pool     PoolConfig     `toml:"pool"`
	Hours    HoursConfig    `toml:"hours"`
	Teams    []TeamConfig   `toml:"teams" validate:"required,min=1,dive"`
	Access   AccessConfig   `toml:"access"`
	Sessions SessionsConfig `toml:"sessions"`
	Workers  WorkersConfig  `toml:"workers"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=1"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required,min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"`
	TxMaxAttempts   uint   `toml:"tx_max_attempts" validate:"min=1,max=20"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" validate:"required"`
}

type TracingConfig struct {
	Enabled       bool    `toml:"enabled"`
	CollectorAddr string  `toml:"collector_addr" validate:"required_if=Enabled true"`
	Environment   string  `toml:"environment"`
	SampleRatio   float64 `toml:"sample_ratio" validate:"min=0,max=1"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr" validate:"required_if=Enabled true"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"min=0"`
	// CacheTTL время жизни снимка фида в секундах
	CacheTTL int `toml:"cache_ttl" validate:"min=0"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers" validate:"required_if=Enabled true"`
	Topic   string   `toml:"topic" validate:"required_if=Enabled true"`
}

// FeedConfig внешняя система учёта (расписание бронирований и статусы ПК)
type FeedConfig struct {
	ReservationsURL string `toml:"reservations_url" validate:"required,url"`
	StatusURL       string `toml:"status_url" validate:"required,url"`
	Timeout         int    `toml:"timeout" validate:"min=1"`
	MaxRetries      uint   `toml:"max_retries" validate:"max=10"`
}

// LabConfig правила зала
type LabConfig struct {
	Timezone          string   `toml:"timezone" validate:"required"`
	AdvanceNoticeDays int      `toml:"advance_notice_days" validate:"min=0"`
	WeekdayPrimeHour  int      `toml:"weekday_prime_hour" validate:"min=0,max=23"`
	WeekendPrimeHour  int      `toml:"weekend_prime_hour" validate:"min=0,max=23"`
	WeekendDays       []string `toml:"weekend_days" validate:"dive,weekday"`
	SlotMinutes       int      `toml:"slot_minutes" validate:"min=5,max=120"`
	ToleranceMinutes  int      `toml:"tolerance_minutes" validate:"min=0,max=60"`
	// Games игры на консолях зала по ключу консоли
	Games map[string][]string `toml:"games" validate:"dive,keys,required,endkeys,dive,required"`
}

type PoolConfig struct {
	MainCeiling int                 `toml:"main_ceiling" validate:"min=0"`
	BackOrder   []int               `toml:"back_order"`
	Suppressed  map[string][]string `toml:"suppressed" validate:"dive,keys,weekday,endkeys,dive,oneof=main back"`
	Resources   []ResourceConfig    `toml:"resources" validate:"required,min=1,dive"`
}

type ResourceConfig struct {
	ID        int    `toml:"id" validate:"required,min=1"`
	Name      string `toml:"name" validate:"required"`
	Zone      string `toml:"zone" validate:"oneof=main back"`
	Block     int    `toml:"block" validate:"min=0"`
	Streaming bool   `toml:"streaming"`
}

// HoursConfig часы работы: таблица по дням недели и переопределения по датам
type HoursConfig struct {
	Weekly    map[string]DayHoursConfig `toml:"weekly" validate:"dive,keys,weekday,endkeys"`
	Overrides []OverrideConfig          `toml:"overrides" validate:"dive"`
}

type DayHoursConfig struct {
	Closed bool   `toml:"closed"`
	Open   string `toml:"open" validate:"required_if=Closed false"`
	Close  string `toml:"close" validate:"required_if=Closed false"`
}

type OverrideConfig struct {
	Date   string `toml:"date" validate:"required,datetime=2006-01-02"`
	Closed bool   `toml:"closed"`
	Open   string `toml:"open" validate:"required_if=Closed false"`
	Close  string `toml:"close" validate:"required_if=Closed false"`
}

// TeamConfig команда; quota = -1 означает отсутствие лимита
type TeamConfig struct {
	Name  string `toml:"name" validate:"required"`
	Quota int    `toml:"quota" validate:"min=-1"`
}

type AccessConfig struct {
	// OperatorIDs пользователи с правами оператора (внешние брони, отмена чужих, подтверждения)
	OperatorIDs []int64 `toml:"operator_ids"`
}

type SessionsConfig struct {
	TTL int `toml:"ttl" validate:"min=1"`
}

type WorkersConfig struct {
	SyncEnabled         bool `toml:"sync_enabled"`
	SyncInterval        int  `toml:"sync_interval" validate:"min=1"`
	LookaheadDays       int  `toml:"lookahead_days" validate:"min=0,max=31"`
	StaleAfter          int  `toml:"stale_after" validate:"min=1"`
	QuotaSweepEnabled   bool `toml:"quota_sweep_enabled"`
	AggregationInterval int  `toml:"aggregation_interval" validate:"min=1"`
}

// IsOperator проверяет, что пользователь является оператором
func (a AccessConfig) IsOperator(userID int64) bool {
	for _, id := range a.OperatorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Load читает TOML-файл, подставляет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает содержимое TOML-файла
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := newValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxAttempts:   5,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "gameroom-reservations"},
		Tracing: TracingConfig{SampleRatio: 1},
		Redis:   RedisConfig{CacheTTL: 30},
		Feed:    FeedConfig{Timeout: 5, MaxRetries: 3},
		Lab: LabConfig{
			AdvanceNoticeDays: 2,
			WeekdayPrimeHour:  19,
			WeekendPrimeHour:  18,
			WeekendDays:       []string{"friday", "saturday"},
			SlotMinutes:       30,
			ToleranceMinutes:  5,
		},
		Sessions: SessionsConfig{TTL: 900},
		Workers: WorkersConfig{
			SyncInterval:        300,
			LookaheadDays:       7,
			StaleAfter:          3600,
			AggregationInterval: 600,
		},
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := parseWeekday(fl.Field().String())
		return ok
	})
	return v
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}
