package select_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RescheduleService/internal/api/handlers"
	selectSlot "github.com/m04kA/SMC-RescheduleService/internal/usecase/select_slot"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "время слота обязательно"
	msgSessionNotFound       = "сессия переноса не найдена или истекла"
	msgInvalidSelection      = "выбранное время отсутствует в списке доступных слотов"
	msgStaleAvailability     = "данные о мастерах устарели, обновите список слотов"
	msgMalformedAvailability = "бэкенд вернул некорректные данные о доступности"
	msgRequestSuperseded     = "сессия изменена параллельным запросом, повторите выбор"
)

type Handler struct {
	useCase SelectSlotUseCase
	logger  Logger
}

func NewHandler(useCase SelectSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reschedule-sessions/{sessionId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	sessionID := mux.Vars(r)["sessionId"]

	// Декодируем body
	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reschedule-sessions/{id}/selection - Invalid request body: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID))
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, selectSlot.ErrInvalidInput):
			h.logger.Warn("POST /reschedule-sessions/{id}/selection - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, selectSlot.ErrSessionNotFound):
			h.logger.Warn("POST /reschedule-sessions/{id}/selection - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, selectSlot.ErrInvalidSelection):
			h.logger.Warn("POST /reschedule-sessions/{id}/selection - Slot not offered: session_id=%s, time=%s", sessionID, req.Time)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, selectSlot.ErrStaleAvailability):
			h.logger.Warn("POST /reschedule-sessions/{id}/selection - Stale availability: session_id=%s, time=%s, error=%v", sessionID, req.Time, err)
			handlers.RespondConflict(w, msgStaleAvailability)

		case errors.Is(err, selectSlot.ErrRequestSuperseded):
			h.logger.Info("POST /reschedule-sessions/{id}/selection - Superseded: session_id=%s, time=%s", sessionID, req.Time)
			handlers.RespondConflict(w, msgRequestSuperseded)

		case errors.Is(err, selectSlot.ErrMalformedAvailability):
			h.logger.Error("POST /reschedule-sessions/{id}/selection - Malformed availability: session_id=%s, time=%s, error=%v", sessionID, req.Time, err)
			handlers.RespondUnprocessable(w, msgMalformedAvailability)

		default:
			h.logger.Error("POST /reschedule-sessions/{id}/selection - Failed to select slot: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reschedule-sessions/{id}/selection - Slot selected: session_id=%s, time=%s, staff_id=%d",
		sessionID, result.Slot.Time, result.Staff.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
