package domain

import "github.com/m04kA/SMC-RescheduleService/pkg/types"

// AvailabilityEntry is one time-of-day label with the staff ids available at that time
type AvailabilityEntry struct {
	Time     types.TimeString
	StaffIDs []int64
}

// StaffAvailability is the raw per-slot availability for one staff-or-roster query and one date.
// Entries keep the order in which the backend listed them.
type StaffAvailability struct {
	entries []AvailabilityEntry
	index   map[types.TimeString]int
}

// NewStaffAvailability builds an availability snapshot from entries in source order
func NewStaffAvailability(entries ...AvailabilityEntry) StaffAvailability {
	var a StaffAvailability
	for _, e := range entries {
		a.Put(e.Time, e.StaffIDs)
	}
	return a
}

// Put sets the staff ids for a time label. A repeated label keeps its first position and
// takes the latest value, like a JSON object with a duplicated key.
func (a *StaffAvailability) Put(time types.TimeString, staffIDs []int64) {
	if a.index == nil {
		a.index = make(map[types.TimeString]int)
	}
	ids := append([]int64(nil), staffIDs...)
	if i, ok := a.index[time]; ok {
		a.entries[i].StaffIDs = ids
		return
	}
	a.index[time] = len(a.entries)
	a.entries = append(a.entries, AvailabilityEntry{Time: time, StaffIDs: ids})
}

// Entries returns a copy of the entries in source order
func (a StaffAvailability) Entries() []AvailabilityEntry {
	out := make([]AvailabilityEntry, len(a.entries))
	for i, e := range a.entries {
		out[i] = AvailabilityEntry{Time: e.Time, StaffIDs: append([]int64(nil), e.StaffIDs...)}
	}
	return out
}

// Get returns the staff ids listed for a time label
func (a StaffAvailability) Get(time types.TimeString) ([]int64, bool) {
	i, ok := a.index[time]
	if !ok {
		return nil, false
	}
	return append([]int64(nil), a.entries[i].StaffIDs...), true
}

func (a StaffAvailability) Len() int {
	return len(a.entries)
}

func (a StaffAvailability) IsEmpty() bool {
	return len(a.entries) == 0
}
