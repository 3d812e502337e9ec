package roster

import "errors"

var (
	// ErrRosterUnavailable возвращается, когда состав персонала не удалось получить
	ErrRosterUnavailable = errors.New("roster: staff list is unavailable")
)
