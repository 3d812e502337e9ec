package select_slot

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает время слота
func validateRequest(req *Request) (types.TimeString, error) {
	if req == nil {
		return "", fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return "", fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Time) == "" {
		return "", fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	// Метки слотов приходят от бэкенда как есть, поэтому формат не проверяем:
	// достаточно совпадения с одним из предложенных слотов
	return types.TimeString(strings.TrimSpace(req.Time)), nil
}
