package compute_slots

import (
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// Request модель запроса на вычисление слотов в рамках сессии
type Request struct {
	SessionID string
	Selection domain.StaffSelection
	Date      time.Time // дата без времени
}

// Response модель ответа со списком слотов
type Response struct {
	SessionID  string
	Selection  domain.StaffSelection
	Date       time.Time
	Generation uint64
	Slots      []domain.TimeSlot

	// AvailabilityError выставляется, когда бэкенд не ответил: список слотов пуст,
	// но это не означает отсутствие свободного времени
	AvailabilityError bool
}

// Result результат вычисления слотов вне сессии
type Result struct {
	Slots    []domain.TimeSlot
	Roster   []domain.Staff
	FetchErr error // ошибка получения данных; Slots в этом случае пуст
}
