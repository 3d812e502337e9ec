package select_slot

import "github.com/m04kA/SMC-RescheduleService/internal/domain"

// Request модель запроса на выбор слота
type Request struct {
	SessionID string
	Time      string // HH:mm, один из слотов последнего списка
}

// Response модель ответа с обновленным бронированием
type Response struct {
	SessionID   string
	Reservation domain.Reservation // исходное бронирование с новыми staff и bookingTime
	Staff       domain.Staff       // мастер, на которого пришлась запись
	Slot        domain.TimeSlot
	Generation  uint64
}
