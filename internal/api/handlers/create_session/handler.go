package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RescheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-RescheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-RescheduleService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReservation = "некорректные данные бронирования"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reschedule-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req models.CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reschedule-sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем сервис
	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /reschedule-sessions - Invalid reservation: reservation_id=%d, error=%v", req.Reservation.ID, err)
			handlers.RespondBadRequest(w, msgInvalidReservation)

		default:
			h.logger.Error("POST /reschedule-sessions - Failed to create session: reservation_id=%d, error=%v", req.Reservation.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reschedule-sessions - Session created: session_id=%s, reservation_id=%d", result.ID, req.Reservation.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
