package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-RescheduleService/internal/infra/storage/session"
	"github.com/m04kA/SMC-RescheduleService/internal/service/sessions/models"
)

// Service сервис жизненного цикла сессий переноса
type Service struct {
	repo     SessionRepository
	clock    TimeProvider
	ttl      time.Duration
	metrics  Metrics
	logger   Logger
	newID    func() string
	location *time.Location
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	repo SessionRepository,
	clock TimeProvider,
	ttl time.Duration,
	metrics Metrics,
	logger Logger,
) *Service {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &Service{
		repo:     repo,
		clock:    clock,
		ttl:      ttl,
		metrics:  metrics,
		logger:   logger,
		newID:    func() string { return uuid.NewString() },
		location: clock.Now().Location(),
	}
}

// Create открывает сессию для бронирования. Сессия начинается в состоянии idle:
// мастер и дата выбираются следующими запросами.
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	s.logger.Info("Create: opening session for reservation id=%d", req.Reservation.ID)

	// 1. Конвертируем и проверяем бронирование
	reservation, err := req.Reservation.ToDomainReservation()
	if err != nil {
		s.logger.Warn("Create: invalid reservation id=%d: %v", req.Reservation.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.validateReservation(reservation); err != nil {
		s.logger.Warn("Create: invalid reservation id=%d: %v", reservation.ID, err)
		return nil, err
	}

	// 2. Сохраняем новую сессию
	session := domain.NewSession(s.newID(), reservation, s.clock.Now(), s.ttl)
	if err := s.repo.Create(ctx, session); err != nil {
		s.logger.Error("Create: repository error for reservation id=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: session=%s opened for reservation id=%d", session.ID, reservation.ID)
	return models.FromDomainSession(session, s.location), nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, id string) (*models.SessionResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Get: session=%s not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Get: repository error for session=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSession(session, s.location), nil
}

// Delete закрывает сессию
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Delete: session=%s not found", id)
			return ErrSessionNotFound
		}
		s.logger.Error("Delete: repository error for session=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: session=%s closed", id)
	return nil
}

// RunJanitor периодически удаляет истекшие сессии и пересчитывает число активных, пока не отменен ctx.
// Хранилища с собственным TTL (redis) только пересчитываются.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	purger, _ := s.repo.(ExpiredPurger)
	counter, _ := s.repo.(ActiveCounter)
	if purger == nil && counter == nil {
		return
	}

	s.sweep(ctx, purger, counter)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx, purger, counter)
		}
	}
}

func (s *Service) sweep(ctx context.Context, purger ExpiredPurger, counter ActiveCounter) {
	// 1. Удаляем истекшие сессии
	if purger != nil {
		purged, err := purger.PurgeExpired(ctx)
		if err != nil {
			s.logger.Error("RunJanitor: failed to purge expired sessions: %v", err)
		} else if purged > 0 {
			s.logger.Info("RunJanitor: purged %d expired sessions", purged)
		}
	}

	// 2. Берем число активных сессий из хранилища, а не считаем открытия и закрытия
	if counter == nil || s.metrics == nil {
		return
	}
	active, err := counter.CountActive(ctx)
	if err != nil {
		s.logger.Error("RunJanitor: failed to count active sessions: %v", err)
		return
	}
	s.metrics.SetActiveSessions(active)
}

func (s *Service) validateReservation(r domain.Reservation) error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(r.BookingTime) == "" {
		return nil
	}
	if _, _, err := domain.ParseBookingTime(r.BookingTime, s.location); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
