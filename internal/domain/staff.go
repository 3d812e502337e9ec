package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Staff is a roster member of a store. The engine treats it as read-only reference data.
type Staff struct {
	ID          int64
	FirstName   string
	LastName    string
	Nickname    string
	Phone       string
	SkillLevel  int
	DateOfBirth string // DD/MM/YYYY
	Rate        float64
	WorkingDays WorkingDays
	StoreUUID   string
	TenantUUID  string
	IsActive    bool
}

// DisplayName returns the nickname, falling back to the full name
func (s Staff) DisplayName() string {
	if s.Nickname != "" {
		return s.Nickname
	}
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// WorksOn reports whether the staff member works on the given weekday (1 = Monday ... 7 = Sunday)
func (s Staff) WorksOn(day int) bool {
	return s.WorkingDays.Contains(day)
}

// WorkingDays is a sorted set of weekday numbers in the range 1..7
type WorkingDays []int

// ParseWorkingDays parses the backend's comma separated representation ("1,2,5").
// Duplicates are collapsed, the result is sorted.
func ParseWorkingDays(raw string) (WorkingDays, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return WorkingDays{}, nil
	}

	seen := make(map[int]struct{})
	days := make(WorkingDays, 0, MaxWorkingDay)
	for _, part := range strings.Split(raw, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWorkingDays, raw)
		}
		if day < MinWorkingDay || day > MaxWorkingDay {
			return nil, fmt.Errorf("%w: day %d out of range", ErrInvalidWorkingDays, day)
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Ints(days)
	return days, nil
}

// Contains reports whether day is in the set
func (w WorkingDays) Contains(day int) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// String returns the backend representation ("1,2,5")
func (w WorkingDays) String() string {
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// Roster is a lookup of staff by id built from a roster snapshot.
// The "any" id never appears in it.
type Roster struct {
	order []int64
	byID  map[int64]Staff
}

// NewRoster builds a roster from a snapshot. Entries with the "any" id are skipped and
// returned in dropped so the caller can report them; later duplicates replace earlier ones.
func NewRoster(staff []Staff) (roster Roster, dropped int) {
	roster = Roster{
		order: make([]int64, 0, len(staff)),
		byID:  make(map[int64]Staff, len(staff)),
	}
	for _, s := range staff {
		if s.ID == AnyStaffID {
			dropped++
			continue
		}
		if _, exists := roster.byID[s.ID]; !exists {
			roster.order = append(roster.order, s.ID)
		}
		roster.byID[s.ID] = s
	}
	return roster, dropped
}

// Get returns the roster entry for id
func (r Roster) Get(id int64) (Staff, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Len returns the number of staff in the roster
func (r Roster) Len() int {
	return len(r.order)
}

// Members returns staff in snapshot order
func (r Roster) Members() []Staff {
	members := make([]Staff, 0, len(r.order))
	for _, id := range r.order {
		members = append(members, r.byID[id])
	}
	return members
}
