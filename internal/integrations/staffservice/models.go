package staffservice

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// Staff модель сотрудника из API салона
type Staff struct {
	ID          int64          `json:"id"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Nickname    string         `json:"nickname"`
	Phone       string         `json:"phone"`
	SkillLevel  int            `json:"skillLevel"`
	DateOfBirth string         `json:"dateOfBirth"` // DD/MM/YYYY
	Rate        float64        `json:"rate"`
	WorkingDays WorkingDaysCSV `json:"workingDays"`
	StoreUUID   string         `json:"storeUuid"`
	TenantUUID  string         `json:"tenantUuid"`
	IsActive    bool           `json:"isActive"`
}

// WorkingDaysCSV рабочие дни в формате API: строка "1,2,3".
// При чтении также принимается массив чисел.
type WorkingDaysCSV string

// UnmarshalJSON принимает "1,2,3", [1,2,3] и null
func (w *WorkingDaysCSV) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*w = ""
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var days []int
		if err := json.Unmarshal(data, &days); err != nil {
			return fmt.Errorf("workingDays: %w", err)
		}
		csv := make([]byte, 0, len(days)*2)
		for i, d := range days {
			if i > 0 {
				csv = append(csv, ',')
			}
			csv = fmt.Appendf(csv, "%d", d)
		}
		*w = WorkingDaysCSV(csv)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("workingDays: %w", err)
	}
	*w = WorkingDaysCSV(s)
	return nil
}

// ToDomain конвертирует модель API в доменную
func (s Staff) ToDomain() (domain.Staff, error) {
	days, err := domain.ParseWorkingDays(string(s.WorkingDays))
	if err != nil {
		return domain.Staff{}, fmt.Errorf("staff id=%d: %w", s.ID, err)
	}

	return domain.Staff{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Nickname:    s.Nickname,
		Phone:       s.Phone,
		SkillLevel:  s.SkillLevel,
		DateOfBirth: s.DateOfBirth,
		Rate:        s.Rate,
		WorkingDays: days,
		StoreUUID:   s.StoreUUID,
		TenantUUID:  s.TenantUUID,
		IsActive:    s.IsActive,
	}, nil
}

// FromDomainStaff конвертирует доменную модель в модель API
func FromDomainStaff(s domain.Staff) Staff {
	return Staff{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Nickname:    s.Nickname,
		Phone:       s.Phone,
		SkillLevel:  s.SkillLevel,
		DateOfBirth: s.DateOfBirth,
		Rate:        s.Rate,
		WorkingDays: WorkingDaysCSV(s.WorkingDays.String()),
		StoreUUID:   s.StoreUUID,
		TenantUUID:  s.TenantUUID,
		IsActive:    s.IsActive,
	}
}
