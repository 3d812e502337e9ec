package get_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RescheduleService/internal/api/handlers"
	computeSlots "github.com/m04kA/SMC-RescheduleService/internal/usecase/compute_slots"
)

const (
	msgMissingStaffID    = "параметр staffId обязателен"
	msgMissingDate       = "дата обязательна"
	msgInvalidParams     = "некорректные параметры: ожидается staffId=any или id мастера и date в формате DD/MM/YYYY"
	msgSessionNotFound   = "сессия переноса не найдена или истекла"
	msgRequestSuperseded = "мастер или дата были изменены, результат устарел"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase ComputeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ComputeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reschedule-sessions/{sessionId}/slots
// Query params: staffId (required, "any" или id), date (required, DD/MM/YYYY)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	sessionID := mux.Vars(r)["sessionId"]

	// Извлекаем staffId из query параметров
	staffIDStr := r.URL.Query().Get("staffId")
	if staffIDStr == "" {
		h.logger.Warn("GET /reschedule-sessions/{id}/slots - Missing staff ID: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgMissingStaffID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /reschedule-sessions/{id}/slots - Missing date: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом мастера и даты)
	useCaseReq, err := ToUseCaseRequest(sessionID, staffIDStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /reschedule-sessions/{id}/slots - Invalid params: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, computeSlots.ErrSessionNotFound):
			h.logger.Warn("GET /reschedule-sessions/{id}/slots - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, computeSlots.ErrInvalidInput):
			h.logger.Warn("GET /reschedule-sessions/{id}/slots - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, computeSlots.ErrRequestSuperseded):
			h.logger.Info("GET /reschedule-sessions/{id}/slots - Superseded: session_id=%s, staff=%s, date=%s",
				sessionID, staffIDStr, dateStr)
			handlers.RespondConflict(w, msgRequestSuperseded)

		default:
			h.logger.Error("GET /reschedule-sessions/{id}/slots - Failed to compute slots: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /reschedule-sessions/{id}/slots - Slots computed: session_id=%s, staff=%s, date=%s, slots_count=%d, availability_error=%t",
		sessionID, staffIDStr, dateStr, len(result.Slots), result.AvailabilityError)
	handlers.RespondJSON(w, http.StatusOK, response)
}
