package roster

import (
	"context"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// RosterSource интерфейс источника состава персонала
type RosterSource interface {
	FetchRoster(ctx context.Context, activeOnly bool) ([]domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
