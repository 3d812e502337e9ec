package staffservice

import "errors"

var (
	// ErrAvailabilityFetch общая ошибка получения доступности или состава персонала.
	// Вызывающая сторона показывает пустой список слотов, а не устаревшие данные.
	ErrAvailabilityFetch = errors.New("staffservice client: availability fetch failed")

	// ErrUnauthorized возвращается, когда бэкенд отклонил токен (401/403)
	ErrUnauthorized = errors.New("staffservice client: unauthorized")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")
)
