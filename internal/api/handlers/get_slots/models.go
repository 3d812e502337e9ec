package get_slots

import (
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/internal/service/sessions/models"
	computeSlots "github.com/m04kA/SMC-RescheduleService/internal/usecase/compute_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	SessionID         string           `json:"sessionId"`
	StaffID           string           `json:"staffId"`
	Date              string           `json:"date"`
	Generation        uint64           `json:"generation"`
	Slots             []models.SlotDTO `json:"slots"`
	AvailabilityError bool             `json:"availabilityError"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *computeSlots.Response) *SlotsResponse {
	return &SlotsResponse{
		SessionID:         resp.SessionID,
		StaffID:           resp.Selection.String(),
		Date:              resp.Date.Format(domain.DateFormat),
		Generation:        resp.Generation,
		Slots:             models.FromDomainSlots(resp.Slots),
		AvailabilityError: resp.AvailabilityError,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(sessionID, staffIDStr, dateStr string) (*computeSlots.Request, error) {
	selection, err := domain.ParseStaffSelection(staffIDStr)
	if err != nil {
		return nil, err
	}

	// Зона применяется в use case, здесь важна только календарная дата
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &computeSlots.Request{
		SessionID: sessionID,
		Selection: selection,
		Date:      date,
	}, nil
}
