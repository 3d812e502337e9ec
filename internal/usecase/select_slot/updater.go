package select_slot

import (
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// ApplySelection возвращает копию бронирования с новым мастером и временем
// "DD/MM/YYYY HH:mm". Остальные поля не меняются, исходное бронирование не затрагивается.
func ApplySelection(reservation domain.Reservation, staff domain.Staff, date time.Time, slot domain.TimeSlot) domain.Reservation {
	updated := reservation.Clone()
	updated.Staff = staff
	updated.Staff.WorkingDays = append(domain.WorkingDays(nil), staff.WorkingDays...)
	updated.BookingTime = domain.FormatBookingTime(date, slot.Time)
	return updated
}

// Select определяет мастера для слота и применяет выбор к бронированию.
// При ошибке бронирование не меняется.
func Select(
	selection domain.StaffSelection,
	slot domain.TimeSlot,
	reservation domain.Reservation,
	date time.Time,
	roster []domain.Staff,
	rnd RandomSource,
) (domain.Reservation, domain.Staff, error) {
	index, _ := domain.NewRoster(roster)

	staff, err := ResolveStaff(selection, slot, index, rnd)
	if err != nil {
		return reservation, domain.Staff{}, err
	}
	return ApplySelection(reservation, staff, date, slot), staff, nil
}
