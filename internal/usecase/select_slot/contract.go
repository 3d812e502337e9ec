package select_slot

import (
	"context"
	"math/rand"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий переноса
type SessionRepository interface {
	Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)
}

// RandomSource источник случайных индексов для выбора "любого мастера".
// IntN возвращает число из [0, n).
type RandomSource interface {
	IntN(n int) int
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс метрик use case
type Metrics interface {
	IncStaffResolution(mode, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// GlobalRandom равномерный выбор через math/rand
type GlobalRandom struct{}

// IntN возвращает случайное число из [0, n)
func (GlobalRandom) IntN(n int) int {
	return rand.Intn(n)
}
