package select_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-RescheduleService/internal/infra/storage/session"
)

// Исходы определения мастера для метрик
const (
	outcomeResolved  = "resolved"
	outcomeStale     = "stale"
	outcomeMalformed = "malformed"
	outcomeInvalid   = "invalid"
)

// UseCase use case выбора слота и определения мастера
type UseCase struct {
	sessions     SessionRepository
	random       RandomSource
	timeProvider TimeProvider
	metrics      Metrics
	sessionTTL   time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionRepository,
	random RandomSource,
	metrics Metrics,
	sessionTTL time.Duration,
	logger Logger,
) *UseCase {
	if random == nil {
		random = GlobalRandom{}
	}
	return &UseCase{
		sessions:     sessions,
		random:       random,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		sessionTTL:   sessionTTL,
		logger:       logger,
	}
}

// Execute выбирает слот из последнего списка сессии, определяет мастера и возвращает
// обновленное бронирование. Если мастера определить нельзя, сессия не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	slotTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SelectSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SelectSlot: session=%s, time=%s", req.SessionID, slotTime)

	var (
		resp      Response
		selection domain.StaffSelection
	)

	// 2. Все шаги выполняются над одной версией сессии
	session, err := uc.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		selection = s.Selection

		// 2.1 Слот должен быть из последнего вычисленного списка
		slot, err := s.ChooseSlot(slotTime)
		if err != nil {
			return err
		}

		// 2.2 Определяем мастера по снимку состава, полученному вместе со слотами
		roster, dropped := domain.NewRoster(s.Roster)
		if dropped > 0 {
			uc.logger.Warn("SelectSlot: session=%s, dropped %d roster entries with reserved id", s.ID, dropped)
		}
		staff, err := ResolveStaff(s.Selection, slot, roster, uc.random)
		if err != nil {
			return err
		}

		// 2.3 Обновляем бронирование
		updated := ApplySelection(s.Reservation, staff, s.Date, slot)
		if err := s.Resolve(updated); err != nil {
			return err
		}
		s.Touch(uc.timeProvider.Now(), uc.sessionTTL)

		resp = Response{
			SessionID:   s.ID,
			Reservation: updated,
			Staff:       staff,
			Slot:        slot,
			Generation:  s.Generation,
		}
		return nil
	})
	if err != nil {
		return nil, uc.mapError(req.SessionID, selection, err)
	}

	uc.observe(selection, outcomeResolved)
	uc.logger.Info("SelectSlot: session=%s resolved to staff=%d at %s",
		session.ID, resp.Staff.ID, resp.Reservation.BookingTime)

	return &resp, nil
}

func (uc *UseCase) mapError(sessionID string, selection domain.StaffSelection, err error) error {
	switch {
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		uc.logger.Warn("SelectSlot: session=%s not found", sessionID)
		return ErrSessionNotFound
	case errors.Is(err, sessionRepo.ErrConflict):
		uc.logger.Warn("SelectSlot: session=%s changed concurrently: %v", sessionID, err)
		return ErrRequestSuperseded
	case errors.Is(err, domain.ErrSlotNotOffered), errors.Is(err, domain.ErrInvalidTransition):
		uc.observe(selection, outcomeInvalid)
		uc.logger.Warn("SelectSlot: session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	case errors.Is(err, ErrStaleAvailability):
		uc.observe(selection, outcomeStale)
		uc.logger.Warn("SelectSlot: session=%s: %v", sessionID, err)
		return err
	case errors.Is(err, ErrMalformedAvailability):
		uc.observe(selection, outcomeMalformed)
		uc.logger.Error("SelectSlot: session=%s: %v", sessionID, err)
		return err
	case errors.Is(err, ErrInvalidInput):
		return err
	default:
		uc.logger.Error("SelectSlot: session=%s, failed to select slot: %v", sessionID, err)
		return fmt.Errorf("%w: failed to select slot: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(selection domain.StaffSelection, outcome string) {
	if uc.metrics == nil || !selection.IsValid() {
		return
	}
	uc.metrics.IncStaffResolution(selection.Mode(), outcome)
}
