package roster

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/internal/service/roster/models"
)

// AnyOptionLabel подпись варианта "любой мастер"
const AnyOptionLabel = "Anyone"

// Service сервис вариантов выбора мастера
type Service struct {
	source RosterSource
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(source RosterSource, logger Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// ListOptions возвращает вариант "любой мастер" и состав персонала.
// По умолчанию только активные сотрудники.
func (s *Service) ListOptions(ctx context.Context, includeInactive bool) (*models.OptionsResponse, error) {
	// 1. Получаем состав
	staff, err := s.source.FetchRoster(ctx, !includeInactive)
	if err != nil {
		s.logger.Error("ListOptions: failed to fetch roster: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRosterUnavailable, err)
	}

	// 2. Индексируем по id, зарезервированный id не может принадлежать сотруднику
	roster, dropped := domain.NewRoster(staff)
	if dropped > 0 {
		s.logger.Warn("ListOptions: dropped %d staff entries with reserved id %d", dropped, domain.AnyStaffID)
	}

	// 3. "Любой мастер" всегда первый
	options := make([]models.StaffOption, 0, roster.Len()+1)
	options = append(options, models.StaffOption{
		Selection: domain.AnyStaff(),
		Label:     AnyOptionLabel,
	})
	for _, member := range roster.Members() {
		member := member
		options = append(options, models.StaffOption{
			Selection: domain.SpecificStaff(member.ID),
			Label:     member.DisplayName(),
			Staff:     &member,
		})
	}

	s.logger.Info("ListOptions: %d staff options", len(options))
	return &models.OptionsResponse{Options: options, Dropped: dropped}, nil
}
