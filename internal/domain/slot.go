package domain

import "github.com/m04kA/SMC-RescheduleService/pkg/types"

// TimeSlot is a bookable time of day together with the staff available at it.
// Staffs is never empty.
type TimeSlot struct {
	Time   types.TimeString
	Staffs []int64
}

// HasCandidate reports whether staffID is available at this slot
func (s TimeSlot) HasCandidate(staffID int64) bool {
	for _, id := range s.Staffs {
		if id == staffID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (s TimeSlot) Clone() TimeSlot {
	return TimeSlot{Time: s.Time, Staffs: append([]int64(nil), s.Staffs...)}
}

// FindSlot looks a slot up by its time label
func FindSlot(slots []TimeSlot, time types.TimeString) (TimeSlot, bool) {
	for _, s := range slots {
		if s.Time == time {
			return s.Clone(), true
		}
	}
	return TimeSlot{}, false
}
