package authservice

import "errors"

// StatusAccountNotActivated нестандартный статус бэкенда: email пользователя не подтвержден
const StatusAccountNotActivated = 461

var (
	// ErrInvalidCredentials возвращается при неверных email/пароле
	ErrInvalidCredentials = errors.New("authservice client: invalid credentials")

	// ErrAccountNotActivated возвращается, когда аккаунт еще не активирован
	ErrAccountNotActivated = errors.New("authservice client: account is not activated")

	// ErrRefreshRejected возвращается, когда refresh-токен отклонен (сессия истекла)
	ErrRefreshRejected = errors.New("authservice client: refresh token rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("authservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("authservice client: internal error")
)
