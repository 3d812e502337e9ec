package get_staff_options

import (
	"context"

	"github.com/m04kA/SMC-RescheduleService/internal/service/roster/models"
)

type RosterService interface {
	ListOptions(ctx context.Context, includeInactive bool) (*models.OptionsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
