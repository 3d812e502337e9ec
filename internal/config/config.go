package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Session storage backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	App          AppConfig          `toml:"app"`
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	StaffService StaffServiceConfig `toml:"staff_service"`
	AuthService  AuthServiceConfig  `toml:"auth_service"`
	Auth         AuthConfig         `toml:"auth"`
	Sessions     SessionsConfig     `toml:"sessions"`
	Redis        RedisConfig        `toml:"redis"`
	Database     DatabaseConfig     `toml:"database"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
	CORS         CORSConfig         `toml:"cors"`
}

type AppConfig struct {
	Timezone string `toml:"timezone"` // IANA имя, пусто = локальная зона
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type StaffServiceConfig struct {
	URL          string `toml:"url"`
	Timeout      int    `toml:"timeout"`       // секунды, на один HTTP-запрос
	FetchTimeout int    `toml:"fetch_timeout"` // секунды, на получение состава и доступности вместе
}

// AuthServiceConfig учетные данные сервисного аккаунта для CLI и запросов без токена пользователя
type AuthServiceConfig struct {
	URL          string `toml:"url"`
	Timeout      int    `toml:"timeout"`
	Email        string `toml:"email"`
	Password     string `toml:"password"`
	Token        string `toml:"token"`
	RefreshToken string `toml:"refresh_token"`
}

type AuthConfig struct {
	RequireBearer bool `toml:"require_bearer"`
}

type SessionsConfig struct {
	Backend         string `toml:"backend"`
	TTL             int    `toml:"ttl"`              // секунды
	JanitorInterval int    `toml:"janitor_interval"` // секунды
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
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

type RateLimitConfig struct {
	Enabled    bool    `toml:"enabled"`
	RPS        float64 `toml:"rps"`
	Burst      int     `toml:"burst"`
	TrustProxy bool    `toml:"trust_proxy"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location зона для "сейчас" и для разбора дат
func (a AppConfig) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

// Load читает конфигурацию из TOML-файла, применяет значения по умолчанию,
// переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()

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
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "reschedule_service",
			Path:        "/metrics",
		},
		StaffService: StaffServiceConfig{
			Timeout:      5,
			FetchTimeout: 5,
		},
		AuthService: AuthServiceConfig{
			Timeout: 5,
		},
		Sessions: SessionsConfig{
			Backend:         BackendMemory,
			TTL:             int((30 * time.Minute).Seconds()),
			JanitorInterval: 60,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "reschedule:session:",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
	}
}

// applyEnv секреты можно не хранить в файле
func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"STAFF_API_TOKEN", &c.AuthService.Token},
		{"AUTH_REFRESH_TOKEN", &c.AuthService.RefreshToken},
		{"AUTH_EMAIL", &c.AuthService.Email},
		{"AUTH_PASSWORD", &c.AuthService.Password},
		{"DATABASE_PASSWORD", &c.Database.Password},
		{"REDIS_PASSWORD", &c.Redis.Password},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok {
			*o.dst = v
		}
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	if c.StaffService.URL == "" {
		problems = append(problems, "staff_service.url is required")
	}
	if c.StaffService.Timeout <= 0 {
		problems = append(problems, "staff_service.timeout must be positive")
	}
	if c.StaffService.FetchTimeout <= 0 {
		problems = append(problems, "staff_service.fetch_timeout must be positive")
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d is out of range", c.Server.HTTPPort))
	}
	if c.Sessions.TTL <= 0 {
		problems = append(problems, "sessions.ttl must be positive")
	}
	if _, err := c.App.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("app.timezone: %v", err))
	}

	switch c.Sessions.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required for redis backend")
		}
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("sessions.backend %q is unknown", c.Sessions.Backend))
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit.rps and rate_limit.burst must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
