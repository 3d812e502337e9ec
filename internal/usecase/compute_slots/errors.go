package compute_slots

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("reschedule session not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRequestSuperseded возвращается, когда за время запроса мастер или дата были изменены
	ErrRequestSuperseded = errors.New("request superseded by a newer staff or date choice")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
