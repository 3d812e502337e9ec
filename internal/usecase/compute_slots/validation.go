package compute_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// validateRequest проверяет запрос на вычисление слотов
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	return validateContext(req.Selection, req.Date)
}

// validateContext проверяет выбор мастера и дату
func validateContext(selection domain.StaffSelection, date time.Time) error {
	if !selection.IsValid() {
		return fmt.Errorf("%w: invalid staff selection %s", ErrInvalidInput, selection)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
