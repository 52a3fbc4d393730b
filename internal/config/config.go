package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса (config.toml + переменные окружения)
type Config struct {
	Server         ServerConfig        `toml:"server"`
	Database       DatabaseConfig      `toml:"database"`
	Migrations     MigrationsConfig    `toml:"migrations"`
	Logs           LogsConfig          `toml:"logs"`
	Metrics        MetricsConfig       `toml:"metrics"`
	Tracing        TracingConfig       `toml:"tracing"`
	CatalogService IntegrationConfig   `toml:"catalog_service"`
	ClientService  IntegrationConfig   `toml:"client_service"`
	Cache          CacheConfig         `toml:"cache"`
	Notifications  NotificationsConfig `toml:"notifications"`
	RateLimit      RateLimitConfig     `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type MigrationsConfig struct {
	Enabled bool `toml:"enabled"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// CacheConfig кэш каталога: локальный LRU и опционально Redis
type CacheConfig struct {
	LocalSize       int    `toml:"local_size"`
	LocalTTLSeconds int    `toml:"local_ttl"`
	RedisEnabled    bool   `toml:"redis_enabled"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	RedisTTLSeconds int    `toml:"redis_ttl"`
}

// NotificationsConfig драйвер уведомлений: kafka | asynq | log
type NotificationsConfig struct {
	Driver       string `toml:"driver"`
	KafkaBrokers string `toml:"kafka_brokers"` // через запятую
	Queue        string `toml:"queue"`
}

type RateLimitConfig struct {
	Enabled        bool     `toml:"enabled"`
	RPS            float64  `toml:"rps"`
	Burst          int      `toml:"burst"`
	MaxClients     int      `toml:"max_clients"`
	TrustedProxies []string `toml:"trusted_proxies"` // IP или CIDR, которым доверяем X-Forwarded-For
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения.
// Секреты из окружения перекрывают значения из файла.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
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
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:           LogsConfig{Level: "info"},
		Metrics:        MetricsConfig{Path: "/metrics", ServiceName: "appointment-service"},
		CatalogService: IntegrationConfig{Timeout: 5},
		ClientService:  IntegrationConfig{Timeout: 5},
		Notifications:  NotificationsConfig{Driver: "log", Queue: "notifications"},
		RateLimit:      RateLimitConfig{RPS: 20, Burst: 40, MaxClients: 10000},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Notifications.KafkaBrokers = v
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Database.DBName == "" || c.Database.User == "" {
		return errors.New("config: database.dbname and database.user are required")
	}
	if strings.TrimSpace(c.CatalogService.URL) == "" {
		return errors.New("config: catalog_service.url is required")
	}
	if c.Tracing.Enabled && c.Tracing.OTLPEndpoint == "" {
		return errors.New("config: tracing.otlp_endpoint is required when tracing is enabled")
	}
	if c.Cache.RedisEnabled && c.Cache.RedisAddr == "" {
		return errors.New("config: cache.redis_addr is required when redis is enabled")
	}
	switch c.Notifications.Driver {
	case "log", "kafka", "asynq":
	default:
		return fmt.Errorf("config: unknown notifications.driver %q", c.Notifications.Driver)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("config: rate_limit.rps and rate_limit.burst must be positive")
	}
	return nil
}

// Seconds переводит секунды из конфигурации в time.Duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
