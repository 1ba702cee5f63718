package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath переменная окружения с путем к файлу конфигурации
const EnvConfigPath = "CONFIG_PATH"

// DefaultPath путь к конфигурации по умолчанию
const DefaultPath = "config.toml"

var (
	// ErrReadConfig возвращается, если файл не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	NATS      NATSConfig      `toml:"nats"`
	Weather   WeatherConfig   `toml:"weather"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пустая строка - только stdout
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки Redis (кеш прогноза погоды)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// NATSConfig настройки публикации событий бронирований
type NATSConfig struct {
	Enabled       bool   `toml:"enabled"`
	URL           string `toml:"url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// WeatherConfig настройки клиента прогноза погоды
type WeatherConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"`   // секунды
	FreshTTL int    `toml:"fresh_ttl"` // секунды, пока значение считается свежим
	StaleTTL int    `toml:"stale_ttl"` // секунды, пока устаревшее значение еще отдается
}

// RateLimitConfig ограничение частоты запросов к публичным маршрутам (на IP)
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	// Адреса и подсети прокси, которым разрешено передавать X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// FreshTTLDuration возвращает FreshTTL как time.Duration
func (c WeatherConfig) FreshTTLDuration() time.Duration {
	return time.Duration(c.FreshTTL) * time.Second
}

// StaleTTLDuration возвращает StaleTTL как time.Duration
func (c WeatherConfig) StaleTTLDuration() time.Duration {
	return time.Duration(c.StaleTTL) * time.Second
}

// ResolvePath возвращает путь к конфигурации: явный путь, затем CONFIG_PATH, затем DefaultPath
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if fromEnv := os.Getenv(EnvConfigPath); fromEnv != "" {
		return fromEnv
	}
	return DefaultPath
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "charter_service",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		NATS: NATSConfig{
			URL:           "nats://localhost:4222",
			SubjectPrefix: "charter.bookings",
		},
		Weather: WeatherConfig{
			Timeout:  5,
			FreshTTL: 30 * 60,
			StaleTTL: 6 * 60 * 60,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
	}
}

// Validate проверяет корректность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("%w: database pool sizes must not be negative", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("%w: nats.url is required when nats is enabled", ErrInvalidConfig)
	}
	if c.Weather.FreshTTL < 0 || c.Weather.StaleTTL < c.Weather.FreshTTL {
		return fmt.Errorf("%w: weather.stale_ttl must be >= weather.fresh_ttl >= 0", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("%w: rate_limit.trusted_proxies: invalid address %q", ErrInvalidConfig, proxy)
		}
	}
	return nil
}
