package compute_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-RescheduleService/internal/infra/storage/session"
)

// DefaultFetchTimeout общий таймаут получения состава и доступности
const DefaultFetchTimeout = 5 * time.Second

// UseCase use case вычисления доступных слотов для переноса бронирования
type UseCase struct {
	source       AvailabilitySource
	sessions     SessionRepository
	timeProvider TimeProvider
	metrics      Metrics
	fetchTimeout time.Duration
	sessionTTL   time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// sessions может быть nil, если используется только Compute.
func NewUseCase(
	source AvailabilitySource,
	sessions SessionRepository,
	timeProvider TimeProvider,
	metrics Metrics,
	fetchTimeout time.Duration,
	sessionTTL time.Duration,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &UseCase{
		source:       source,
		sessions:     sessions,
		timeProvider: timeProvider,
		metrics:      metrics,
		fetchTimeout: fetchTimeout,
		sessionTTL:   sessionTTL,
		logger:       logger,
	}
}

// Execute вычисляет слоты для сессии. Последний выбор мастера или даты побеждает:
// если пока шел запрос к бэкенду сессия получила новый выбор, результат отбрасывается
// и возвращается ErrRequestSuperseded.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComputeSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := inLocation(req.Date, now.Location())
	past := isPastDate(date, now)

	uc.logger.Info("ComputeSlots: session=%s, staff=%s, date=%s",
		req.SessionID, req.Selection, date.Format(domain.DateFormat))

	// 2. Фиксируем новый выбор и открываем новое поколение запроса
	var generation uint64
	session, err := uc.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		if err := s.ChooseContext(req.Selection, date); err != nil {
			return err
		}
		gen, err := s.BeginFetch()
		if err != nil {
			return err
		}
		generation = gen
		s.Touch(now, uc.sessionTTL)

		// Для прошедшей даты бэкенд не нужен
		if past {
			return s.CompleteFetch(gen, []domain.TimeSlot{}, nil, nil)
		}
		return nil
	})
	if err != nil {
		return nil, uc.mapSessionError("begin fetch", req.SessionID, err)
	}

	if past {
		uc.logger.Info("ComputeSlots: session=%s, date %s is in the past", req.SessionID, date.Format(domain.DateFormat))
		uc.observeSlots(0)
		return toResponse(session), nil
	}

	// 3. Получаем данные вне блокировки сессии
	result := uc.fetch(ctx, req.Selection, date, now)

	// 4. Применяем результат, только если поколение все еще актуально
	session, err = uc.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		if err := s.CompleteFetch(generation, result.Slots, result.Roster, result.FetchErr); err != nil {
			return err
		}
		s.Touch(uc.timeProvider.Now(), uc.sessionTTL)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStaleGeneration) || errors.Is(err, domain.ErrInvalidTransition) {
			uc.logger.Info("ComputeSlots: session=%s, generation=%d superseded, result dropped", req.SessionID, generation)
			if uc.metrics != nil {
				uc.metrics.IncFetchSuperseded()
			}
			return nil, ErrRequestSuperseded
		}
		return nil, uc.mapSessionError("complete fetch", req.SessionID, err)
	}

	uc.observeSlots(len(session.Slots))
	uc.logger.Info("ComputeSlots: session=%s, generation=%d, slots=%d, availabilityError=%t",
		req.SessionID, generation, len(session.Slots), session.FetchFailed)

	return toResponse(session), nil
}

// Compute вычисляет слоты без сессии: получает состав и доступность и фильтрует слоты
// относительно текущего времени. Ошибка бэкенда не считается ошибкой вызова: она
// возвращается в Result.FetchErr при пустом списке слотов.
func (uc *UseCase) Compute(ctx context.Context, selection domain.StaffSelection, date time.Time) (*Result, error) {
	if err := validateContext(selection, date); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	date = inLocation(date, now.Location())

	if isPastDate(date, now) {
		return &Result{Slots: []domain.TimeSlot{}}, nil
	}

	result := uc.fetch(ctx, selection, date, now)
	uc.observeSlots(len(result.Slots))
	return result, nil
}

// fetch параллельно получает состав и доступность с общим таймаутом
func (uc *UseCase) fetch(ctx context.Context, selection domain.StaffSelection, date, now time.Time) *Result {
	ctx, cancel := context.WithTimeout(ctx, uc.fetchTimeout)
	defer cancel()

	var (
		staff        []domain.Staff
		availability domain.StaffAvailability
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		staff, err = uc.source.FetchRoster(gctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		availability, err = uc.source.FetchAvailability(gctx, selection, date)
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Warn("ComputeSlots: availability fetch failed for staff=%s, date=%s: %v",
			selection, date.Format(domain.DateFormat), err)
		return &Result{Slots: []domain.TimeSlot{}, FetchErr: err}
	}

	roster, dropped := domain.NewRoster(staff)
	if dropped > 0 {
		uc.logger.Warn("ComputeSlots: dropped %d roster entries with reserved id %d", dropped, domain.AnyStaffID)
	}

	return &Result{
		Slots:  FilterSlots(availability, date, now),
		Roster: roster.Members(),
	}
}

func (uc *UseCase) mapSessionError(step, sessionID string, err error) error {
	switch {
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		uc.logger.Warn("ComputeSlots: session=%s not found", sessionID)
		return ErrSessionNotFound
	case errors.Is(err, sessionRepo.ErrConflict):
		uc.logger.Warn("ComputeSlots: session=%s changed concurrently, %s gave up: %v", sessionID, step, err)
		if uc.metrics != nil {
			uc.metrics.IncFetchSuperseded()
		}
		return ErrRequestSuperseded
	case errors.Is(err, domain.ErrInvalidTransition):
		uc.logger.Warn("ComputeSlots: session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("ComputeSlots: session=%s, failed to %s: %v", sessionID, step, err)
		return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
	}
}

func (uc *UseCase) observeSlots(count int) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlots(count)
	}
}

// inLocation переносит календарную дату в зону loc без сдвига дня
func inLocation(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

func toResponse(s *domain.Session) *Response {
	slots := make([]domain.TimeSlot, len(s.Slots))
	for i, slot := range s.Slots {
		slots[i] = slot.Clone()
	}
	return &Response{
		SessionID:         s.ID,
		Selection:         s.Selection,
		Date:              s.Date,
		Generation:        s.Generation,
		Slots:             slots,
		AvailabilityError: s.FetchFailed,
	}
}
