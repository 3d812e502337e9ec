package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrSessionExists возвращается при попытке создать сессию с существующим id
	ErrSessionExists = errors.New("session.repository: session already exists")

	// ErrConflict возвращается, когда конкурентные изменения не удалось применить
	ErrConflict = errors.New("session.repository: concurrent update conflict")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("session.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации сессии
	ErrEncode = errors.New("session.repository: failed to encode session")
)
