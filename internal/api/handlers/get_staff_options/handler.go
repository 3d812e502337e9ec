package get_staff_options

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RescheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-RescheduleService/internal/service/roster"
)

const (
	msgInvalidAllParam   = "некорректное значение параметра all, ожидается true или false"
	msgRosterUnavailable = "не удалось получить список мастеров"
)

type Handler struct {
	service RosterService
	logger  Logger
}

func NewHandler(service RosterService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff-options
// Query params: all (optional, bool) - включить неактивных мастеров
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем опциональный query параметр all
	includeInactive := false
	if raw := r.URL.Query().Get("all"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /staff-options - Invalid all param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAllParam)
			return
		}
		includeInactive = value
	}

	// Вызываем сервис
	result, err := h.service.ListOptions(r.Context(), includeInactive)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrRosterUnavailable):
			h.logger.Warn("GET /staff-options - Roster unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgRosterUnavailable)

		default:
			h.logger.Error("GET /staff-options - Failed to list options: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff-options - Options listed: count=%d, dropped=%d", len(result.Options), result.Dropped)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
