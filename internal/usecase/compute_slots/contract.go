package compute_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// AvailabilitySource интерфейс источника доступности персонала
type AvailabilitySource interface {
	// FetchRoster получает состав персонала
	FetchRoster(ctx context.Context, activeOnly bool) ([]domain.Staff, error)
	// FetchAvailability получает доступность мастера (или всех мастеров) на дату
	FetchAvailability(ctx context.Context, selection domain.StaffSelection, date time.Time) (domain.StaffAvailability, error)
}

// SessionRepository интерфейс репозитория сессий переноса
type SessionRepository interface {
	// Update атомарно применяет fn к сессии; при ошибке fn сессия не сохраняется
	Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс метрик use case
type Metrics interface {
	IncFetchSuperseded()
	ObserveSlots(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в заданной временной зоне
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
