package select_slot

import (
	"fmt"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// ResolveStaff определяет мастера для выбранного слота.
//
// Для конкретного мастера возвращается его запись из состава. Для "любого мастера" кандидат
// выбирается равновероятно из slot.Staffs. Отсутствие мастера в составе означает, что
// доступность устарела (ErrStaleAvailability). Пустой список кандидатов или зарезервированный
// id среди них означают некорректный ответ бэкенда (ErrMalformedAvailability).
func ResolveStaff(selection domain.StaffSelection, slot domain.TimeSlot, roster domain.Roster, rnd RandomSource) (domain.Staff, error) {
	if id, ok := selection.StaffID(); ok {
		staff, found := roster.Get(id)
		if !found {
			return domain.Staff{}, fmt.Errorf("%w: staff id=%d", ErrStaleAvailability, id)
		}
		return staff, nil
	}

	if !selection.IsAny() {
		return domain.Staff{}, fmt.Errorf("%w: staff selection is not set", ErrInvalidInput)
	}

	if len(slot.Staffs) == 0 {
		return domain.Staff{}, fmt.Errorf("%w: slot %s has no candidates", ErrMalformedAvailability, slot.Time)
	}
	for _, id := range slot.Staffs {
		if id == domain.AnyStaffID {
			return domain.Staff{}, fmt.Errorf("%w: slot %s lists reserved staff id %d", ErrMalformedAvailability, slot.Time, id)
		}
	}

	if rnd == nil {
		rnd = GlobalRandom{}
	}
	id := slot.Staffs[rnd.IntN(len(slot.Staffs))]

	staff, found := roster.Get(id)
	if !found {
		return domain.Staff{}, fmt.Errorf("%w: staff id=%d offered at %s", ErrStaleAvailability, id, slot.Time)
	}
	return staff, nil
}
