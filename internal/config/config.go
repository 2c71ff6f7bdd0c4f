package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/glowdesk/GD-AvailabilityService/internal/domain"
)

// Config конфигурация сервиса, загружаемая из config.toml
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	SlotEngine   SlotEngineConfig   `toml:"slot_engine"`
	Cache        CacheConfig        `toml:"cache"`
	Redis        RedisConfig        `toml:"redis"`
	Availability AvailabilityConfig `toml:"availability"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
}

// ServerConfig настройки HTTP-сервера
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
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// SlotEngineConfig настройки клиента удалённого сервиса расчёта слотов
type SlotEngineConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды, ограничивает primary path
}

// CacheConfig настройки кеша доступности
type CacheConfig struct {
	// Backend реализация кеша: "memory" или "redis"
	Backend string `toml:"backend"`
	// FreshnessWindowMinutes время жизни закешированного результата
	FreshnessWindowMinutes int `toml:"freshness_window_minutes"`
}

// RedisConfig настройки Redis (используется при cache.backend = "redis")
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// AvailabilityConfig бизнес-настройки резолвера доступности
type AvailabilityConfig struct {
	// UnassignedPolicy политика для запросов без мастера:
	// "any_professional" или "all_professionals"
	UnassignedPolicy string `toml:"unassigned_policy"`
	// MaxAdvanceDays максимальная глубина бронирования в днях (0 = без ограничения)
	MaxAdvanceDays int `toml:"max_advance_days"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		SlotEngine: SlotEngineConfig{
			Timeout: domain.DefaultSlotEngineTimeoutSec,
		},
		Cache: CacheConfig{
			Backend:                "memory",
			FreshnessWindowMinutes: domain.DefaultFreshnessWindowMinutes,
		},
		Availability: AvailabilityConfig{
			UnassignedPolicy: string(domain.PolicyAnyProfessional),
			MaxAdvanceDays:   domain.DefaultMaxAdvanceDays,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "gd-availability-service",
		},
	}
}

func (c *Config) validate() error {
	if c.SlotEngine.URL == "" {
		return fmt.Errorf("config: slot_engine.url is required")
	}
	if c.SlotEngine.Timeout <= 0 {
		return fmt.Errorf("config: slot_engine.timeout must be positive")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("config: cache.backend must be \"memory\" or \"redis\", got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when cache.backend = \"redis\"")
	}
	if c.Cache.FreshnessWindowMinutes <= 0 {
		return fmt.Errorf("config: cache.freshness_window_minutes must be positive")
	}
	if !domain.UnassignedPolicy(c.Availability.UnassignedPolicy).IsValid() {
		return fmt.Errorf("config: availability.unassigned_policy must be %q or %q, got %q",
			domain.PolicyAnyProfessional, domain.PolicyAllProfessionals, c.Availability.UnassignedPolicy)
	}
	if c.Availability.MaxAdvanceDays < 0 {
		return fmt.Errorf("config: availability.max_advance_days must not be negative")
	}
	return nil
}
