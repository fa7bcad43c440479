package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ErrInvalidConfig возвращается, когда значения конфигурации невозможны
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Events     EventsConfig     `toml:"events"`
	Migrations MigrationsConfig `toml:"migrations"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = только stdout
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled              bool   `toml:"enabled"`
	ServiceName          string `toml:"service_name"`
	Path                 string `toml:"path"`
	PoolStatsIntervalSec int    `toml:"pool_stats_interval"`
}

// SchedulingConfig настройки расчета доступности
type SchedulingConfig struct {
	LookaheadDays           int    `toml:"lookahead_days"`
	EnforceConsecutiveSlots bool   `toml:"enforce_consecutive_slots"`
	DefaultTimezone         string `toml:"default_timezone"`
}

// EventsConfig настройки публикации событий в Kafka
type EventsConfig struct {
	Brokers string `toml:"brokers"` // через запятую, пусто = публикация отключена
	Timeout int    `toml:"timeout"` // секунды
}

// MigrationsConfig настройки миграций при старте
type MigrationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Load читает toml файл, переменные из .env и окружения, применяет значения по умолчанию
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Events.Brokers, "KAFKA_BROKERS")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	return setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

func (c *Config) applyDefaults() {
	defaultInt(&c.Server.HTTPPort, 8080)
	defaultInt(&c.Server.ReadTimeout, 15)
	defaultInt(&c.Server.WriteTimeout, 15)
	defaultInt(&c.Server.IdleTimeout, 60)
	defaultInt(&c.Server.ShutdownTimeout, 10)

	defaultString(&c.Database.Host, "localhost")
	defaultInt(&c.Database.Port, 5432)
	defaultString(&c.Database.SSLMode, "disable")
	defaultInt(&c.Database.MaxOpenConns, 25)
	defaultInt(&c.Database.MaxIdleConns, 5)
	defaultInt(&c.Database.ConnMaxLifetime, 300)

	defaultString(&c.Logs.Level, "info")

	defaultString(&c.Metrics.ServiceName, "appointment_service")
	defaultString(&c.Metrics.Path, "/metrics")
	defaultInt(&c.Metrics.PoolStatsIntervalSec, 15)

	defaultInt(&c.Scheduling.LookaheadDays, domain.DefaultLookaheadDays)
	defaultString(&c.Scheduling.DefaultTimezone, domain.DefaultTimezone)

	defaultInt(&c.Events.Timeout, 5)

	defaultString(&c.Migrations.Dir, ".")
}

// Validate отклоняет невозможные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database port %d out of range", ErrInvalidConfig, c.Database.Port)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database dbname is required", ErrInvalidConfig)
	}
	if c.Scheduling.LookaheadDays <= 0 || c.Scheduling.LookaheadDays > domain.MaxLookaheadDays {
		return fmt.Errorf("%w: lookahead_days must be in 1..%d", ErrInvalidConfig, domain.MaxLookaheadDays)
	}
	if _, err := time.LoadLocation(c.Scheduling.DefaultTimezone); err != nil {
		return fmt.Errorf("%w: default_timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
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

func defaultInt(dst *int, value int) {
	if *dst == 0 {
		*dst = value
	}
}

func defaultString(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
