package select_slot

import (
	"github.com/m04kA/SMC-RescheduleService/internal/service/sessions/models"
	selectSlot "github.com/m04kA/SMC-RescheduleService/internal/usecase/select_slot"
)

// SelectSlotRequest HTTP request model
type SelectSlotRequest struct {
	Time string `json:"time"` // HH:mm
}

// SelectSlotResponse HTTP response model
type SelectSlotResponse struct {
	SessionID   string                `json:"sessionId"`
	Generation  uint64                `json:"generation"`
	Slot        models.SlotDTO        `json:"slot"`
	Staff       models.StaffDTO       `json:"staff"`
	Reservation models.ReservationDTO `json:"reservation"`
}

// ToUseCaseRequest создает запрос use case
func (r SelectSlotRequest) ToUseCaseRequest(sessionID string) *selectSlot.Request {
	return &selectSlot.Request{
		SessionID: sessionID,
		Time:      r.Time,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectSlot.Response) *SelectSlotResponse {
	return &SelectSlotResponse{
		SessionID:   resp.SessionID,
		Generation:  resp.Generation,
		Slot:        models.FromDomainSlot(resp.Slot),
		Staff:       models.FromDomainStaff(resp.Staff),
		Reservation: models.FromDomainReservation(resp.Reservation),
	}
}
