package select_slot

import "errors"

var (
	// ErrStaleAvailability возвращается, когда выбранного мастера нет в текущем составе
	ErrStaleAvailability = errors.New("availability is stale: staff member is not in the roster")

	// ErrInvalidSelection возвращается, когда выбран слот не из последнего списка
	ErrInvalidSelection = errors.New("invalid selection: slot is not offered")

	// ErrMalformedAvailability возвращается, когда у слота нет кандидатов или указан зарезервированный id
	ErrMalformedAvailability = errors.New("malformed availability")

	// ErrRequestSuperseded возвращается, когда сессию одновременно меняли другие запросы
	ErrRequestSuperseded = errors.New("request superseded by a concurrent change of the session")

	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("reschedule session not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
