package compute_slots

import (
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// FilterSlots превращает доступность в список слотов, которые еще можно забронировать.
//
// Прошедшая дата дает пустой список. Для сегодняшней даты остаются слоты, час которых строго
// больше текущего часа (15:00 в 14:59 остается, 14:45 в 14:00 уже нет). Для будущей даты
// остаются все слоты. Порядок совпадает с порядком бэкенда. Записи без мастеров не попадают
// в результат. selectedDate и now должны быть в одной временной зоне.
func FilterSlots(availability domain.StaffAvailability, selectedDate, now time.Time) []domain.TimeSlot {
	day := domain.StartOfDay(selectedDate)
	today := domain.StartOfDay(now)

	if day.Before(today) {
		return []domain.TimeSlot{}
	}
	sameDay := day.Equal(today)

	slots := make([]domain.TimeSlot, 0, availability.Len())
	for _, entry := range availability.Entries() {
		if len(entry.StaffIDs) == 0 {
			continue
		}
		if sameDay {
			hour, err := entry.Time.Hour()
			if err != nil || hour <= now.Hour() {
				continue
			}
		}
		slots = append(slots, domain.TimeSlot{Time: entry.Time, Staffs: entry.StaffIDs})
	}
	return slots
}

func isPastDate(date, now time.Time) bool {
	return domain.StartOfDay(date).Before(domain.StartOfDay(now))
}
