package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	createSessionHandler "github.com/m04kA/SMC-RescheduleService/internal/api/handlers/create_session"
	deleteSessionHandler "github.com/m04kA/SMC-RescheduleService/internal/api/handlers/delete_session"
	getSessionHandler "github.com/m04kA/SMC-RescheduleService/internal/api/handlers/get_session"
	getSlotsHandler "github.com/m04kA/SMC-RescheduleService/internal/api/handlers/get_slots"
	getStaffOptionsHandler "github.com/m04kA/SMC-RescheduleService/internal/api/handlers/get_staff_options"
	selectSlotHandler "github.com/m04kA/SMC-RescheduleService/internal/api/handlers/select_slot"
	"github.com/m04kA/SMC-RescheduleService/internal/api/middleware"
	rosterService "github.com/m04kA/SMC-RescheduleService/internal/service/roster"
	sessionsService "github.com/m04kA/SMC-RescheduleService/internal/service/sessions"
	computeSlotsUC "github.com/m04kA/SMC-RescheduleService/internal/usecase/compute_slots"
	selectSlotUC "github.com/m04kA/SMC-RescheduleService/internal/usecase/select_slot"
)

const rateLimitIdleTTL = 10 * time.Minute

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	d, err := loadDeps(configPath)
	if err != nil {
		return err
	}
	defer d.close()

	cfg := d.cfg
	log := d.log

	log.Info("Starting SMC-RescheduleService %s...", Version)
	log.Info("Configuration loaded from %s (timezone=%s)", configPath, d.location)

	stopCh := make(chan struct{})
	defer close(stopCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище сессий
	repository, closeRepository, err := d.openSessionRepository(ctx, stopCh)
	if err != nil {
		return err
	}
	defer closeRepository()

	sessionTTL := time.Duration(cfg.Sessions.TTL) * time.Second

	// Инициализируем сервисы
	rosterSvc := rosterService.NewService(d.staff, log)
	sessionSvc := sessionsService.NewService(
		repository,
		&sessionsService.RealTimeProvider{Location: d.location},
		sessionTTL,
		d.metrics,
		log,
	)

	// Инициализируем use cases
	computeSlotsUseCase := computeSlotsUC.NewUseCase(
		d.staff,
		repository,
		&computeSlotsUC.RealTimeProvider{Location: d.location},
		d.metrics,
		time.Duration(cfg.StaffService.FetchTimeout)*time.Second,
		sessionTTL,
		log,
	)
	selectSlotUseCase := selectSlotUC.NewUseCase(
		repository,
		selectSlotUC.GlobalRandom{},
		d.metrics,
		sessionTTL,
		log,
	)

	// Инициализируем handlers
	getStaffOptions := getStaffOptionsHandler.NewHandler(rosterSvc, log)
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	deleteSession := deleteSessionHandler.NewHandler(sessionSvc, log)
	getSlots := getSlotsHandler.NewHandler(computeSlotsUseCase, log)
	selectSlot := selectSlotHandler.NewHandler(selectSlotUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if d.metrics != nil {
		r.Use(middleware.Metrics(d.metrics))
		r.Handle(cfg.Metrics.Path, d.metrics.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(log))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, rateLimitIdleTTL, cfg.RateLimit.TrustProxy)
		go limiter.RunCleanup(time.Minute, stopCh)
		api.Use(limiter.Limit)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Токен пользователя передается в бэкенд салона как есть
	api.Use(middleware.Auth(cfg.Auth.RequireBearer, log))

	// --- Мастера ---
	api.HandleFunc("/staff-options", getStaffOptions.Handle).Methods(http.MethodGet)

	// --- Сессии переноса ---
	api.HandleFunc("/reschedule-sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reschedule-sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reschedule-sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)

	// Слоты на дату и выбор слота
	api.HandleFunc("/reschedule-sessions/{sessionId}/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reschedule-sessions/{sessionId}/selection", selectSlot.Handle).Methods(http.MethodPost)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Очистка истекших сессий (для хранилищ без собственного TTL)
	go sessionSvc.RunJanitor(ctx, time.Duration(cfg.Sessions.JanitorInterval)*time.Second)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
