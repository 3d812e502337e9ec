package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RescheduleService/internal/config"
	sessionRepo "github.com/m04kA/SMC-RescheduleService/internal/infra/storage/session"
	"github.com/m04kA/SMC-RescheduleService/internal/integrations/authservice"
	"github.com/m04kA/SMC-RescheduleService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-RescheduleService/internal/service/token"
	"github.com/m04kA/SMC-RescheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RescheduleService/pkg/logger"
	"github.com/m04kA/SMC-RescheduleService/pkg/metrics"
)

// deps общие зависимости команд
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	location *time.Location
	metrics  *metrics.Metrics // nil, если метрики выключены
	staff    *staffservice.Client
}

func loadDeps(configPath string) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	location, err := cfg.App.Location()
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	d := &deps{
		cfg:      cfg,
		log:      log,
		location: location,
	}
	if cfg.Metrics.Enabled {
		d.metrics = metrics.New(cfg.Metrics.ServiceName)
	}

	d.staff = staffservice.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		d.tokenSource(),
		d.metrics,
		log,
	)
	log.Info("Staff service client initialized (url=%s, timeout=%ds)", cfg.StaffService.URL, cfg.StaffService.Timeout)

	return d, nil
}

func (d *deps) close() {
	_ = d.log.Close()
}

// tokenSource сервисный токен для запросов без токена пользователя.
// nil, если не задано ни одной учетной записи.
func (d *deps) tokenSource() staffservice.TokenSource {
	auth := d.cfg.AuthService
	creds := token.Credentials{
		Token:        auth.Token,
		RefreshToken: auth.RefreshToken,
		Email:        auth.Email,
		Password:     auth.Password,
	}
	if creds == (token.Credentials{}) {
		d.log.Info("Service account is not configured, only caller tokens will be used")
		return nil
	}

	var authClient token.AuthClient
	if auth.URL != "" {
		authClient = authservice.NewClient(auth.URL, time.Duration(auth.Timeout)*time.Second, d.log)
	}

	return token.NewSource(authClient, creds, token.RealTimeProvider{}, token.DefaultLeeway, d.log)
}

// openSessionRepository открывает хранилище сессий; closeFn освобождает соединения
func (d *deps) openSessionRepository(ctx context.Context, stopCh <-chan struct{}) (repo sessionRepo.Repository, closeFn func(), err error) {
	cfg := d.cfg

	switch cfg.Sessions.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
		}
		d.log.Info("Session storage: redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
		return sessionRepo.NewRedisRepository(client, cfg.Redis.KeyPrefix, nil), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		d.log.Info("Session storage: postgres (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		closeFn = func() { _ = db.Close() }
		if d.metrics != nil {
			wrapped := dbmetrics.WrapWithDefault(db, d.metrics, stopCh)
			d.log.Info("Database metrics collection started")
			return sessionRepo.NewPostgresRepository(wrapped, nil), closeFn, nil
		}
		return sessionRepo.NewPostgresRepository(db, nil), closeFn, nil

	default:
		d.log.Info("Session storage: memory")
		return sessionRepo.NewMemoryRepository(nil), func() {}, nil
	}
}
