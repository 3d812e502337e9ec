package models

import "github.com/m04kA/SMC-RescheduleService/internal/domain"

// StaffOption один пункт выбора мастера
type StaffOption struct {
	Selection domain.StaffSelection
	Label     string
	Staff     *domain.Staff // nil для варианта "любой мастер"
}

// OptionsResponse варианты выбора мастера: "любой" первым, затем персонал в порядке бэкенда
type OptionsResponse struct {
	Options []StaffOption
	Dropped int // записи с зарезервированным id, отброшенные при сборке
}
