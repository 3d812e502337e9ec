package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий переноса
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// ExpiredPurger реализуется хранилищами, которые сами не удаляют истекшие сессии
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// ActiveCounter считает неистекшие сессии в хранилище
type ActiveCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс метрик сессий
type Metrics interface {
	SetActiveSessions(n int64)
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
