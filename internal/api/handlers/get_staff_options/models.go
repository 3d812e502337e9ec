package get_staff_options

import (
	"github.com/m04kA/SMC-RescheduleService/internal/service/roster/models"
	sessionModels "github.com/m04kA/SMC-RescheduleService/internal/service/sessions/models"
)

// StaffOptionsResponse HTTP response model
type StaffOptionsResponse struct {
	Options []StaffOption `json:"options"`
}

// StaffOption пункт выбора мастера. StaffID принимает значения "any" или id мастера
// и передается как есть в параметр staffId запроса слотов.
type StaffOption struct {
	StaffID string                  `json:"staffId"`
	Label   string                  `json:"label"`
	Staff   *sessionModels.StaffDTO `json:"staff,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.OptionsResponse) *StaffOptionsResponse {
	options := make([]StaffOption, len(resp.Options))
	for i, opt := range resp.Options {
		options[i] = StaffOption{
			StaffID: opt.Selection.String(),
			Label:   opt.Label,
		}
		if opt.Staff != nil {
			dto := sessionModels.FromDomainStaff(*opt.Staff)
			options[i].Staff = &dto
		}
	}
	return &StaffOptionsResponse{Options: options}
}
