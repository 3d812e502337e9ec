package token

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/integrations/authservice"
)

// AuthClient интерфейс клиента сервиса аутентификации
type AuthClient interface {
	Authenticate(ctx context.Context, email, password string) (*authservice.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*authservice.Tokens, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
