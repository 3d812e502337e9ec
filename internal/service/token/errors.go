package token

import "errors"

var (
	// ErrNoCredentials возвращается, когда нет ни действующего токена, ни способа его получить
	ErrNoCredentials = errors.New("token source: no credentials configured")

	// ErrAccountNotActivated возвращается, когда учетная запись не активирована
	ErrAccountNotActivated = errors.New("token source: account is not activated")

	// ErrSessionExpired возвращается, когда refresh-токен отклонен и войти заново нечем
	ErrSessionExpired = errors.New("token source: session expired")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("token source: internal error")
)
