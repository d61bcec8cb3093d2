package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Sweeper  SweeperConfig  `toml:"sweeper"`
	Notifier NotifierConfig `toml:"notifier"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-настройки бронирований
type BookingConfig struct {
	// Timezone гражданская таймзона, в которой задано расписание владельцев
	Timezone string `toml:"timezone"`
	// ApprovalTimeoutMinutes время на ручное подтверждение владельцем
	ApprovalTimeoutMinutes int `toml:"approval_timeout_minutes"`
	// ExtensionMinutes фиксированная длина продления
	ExtensionMinutes int `toml:"extension_minutes"`
	// ExtensionBufferMinutes минимальный остаток до конца активного
	// бронирования, при котором продление еще возможно
	ExtensionBufferMinutes int `toml:"extension_buffer_minutes"`
}

// ApprovalTimeout возвращает тайм-аут подтверждения как Duration
func (c *BookingConfig) ApprovalTimeout() time.Duration {
	return time.Duration(c.ApprovalTimeoutMinutes) * time.Minute
}

// Extension возвращает длину продления как Duration
func (c *BookingConfig) Extension() time.Duration {
	return time.Duration(c.ExtensionMinutes) * time.Minute
}

// ExtensionBuffer возвращает минимальный буфер до конца бронирования
func (c *BookingConfig) ExtensionBuffer() time.Duration {
	return time.Duration(c.ExtensionBufferMinutes) * time.Minute
}

// SweeperConfig настройки фонового обработчика просроченных подтверждений
type SweeperConfig struct {
	IntervalSeconds int `toml:"interval_seconds"`
}

// Interval возвращает период обхода как Duration
func (c *SweeperConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// NotifierConfig настройки клиента сервиса уведомлений
type NotifierConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает конфигурацию из TOML файла и применяет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-parking-service"
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Asia/Jerusalem"
	}
	if c.Booking.ApprovalTimeoutMinutes == 0 {
		c.Booking.ApprovalTimeoutMinutes = 5
	}
	if c.Booking.ExtensionMinutes == 0 {
		c.Booking.ExtensionMinutes = 30
	}
	if c.Booking.ExtensionBufferMinutes == 0 {
		c.Booking.ExtensionBufferMinutes = 10
	}
	if c.Sweeper.IntervalSeconds == 0 {
		c.Sweeper.IntervalSeconds = 60
	}
	if c.Notifier.Timeout == 0 {
		c.Notifier.Timeout = 5
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	return nil
}
