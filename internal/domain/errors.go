package domain

import "errors"

var (
	// ErrInvalidTransition возвращается при недопустимом переходе состояния сессии
	ErrInvalidTransition = errors.New("domain: invalid session state transition")

	// ErrStaleGeneration возвращается, когда результат относится к устаревшему запросу
	ErrStaleGeneration = errors.New("domain: result belongs to a superseded request")

	// ErrSlotNotOffered возвращается, когда слот отсутствует в последнем вычисленном списке
	ErrSlotNotOffered = errors.New("domain: slot is not in the current slot list")

	// ErrInvalidWorkingDays возвращается при некорректном списке рабочих дней
	ErrInvalidWorkingDays = errors.New("domain: invalid working days")

	// ErrInvalidBookingTime возвращается при некорректном формате bookingTime
	ErrInvalidBookingTime = errors.New("domain: invalid booking time")
)
