package staffservice

import (
	"context"
	"time"
)

// TokenSource выдает bearer-токен, когда его нет в контексте запроса
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Metrics интерфейс для метрик вызовов
type Metrics interface {
	ObserveIntegration(target, operation string, err error, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
