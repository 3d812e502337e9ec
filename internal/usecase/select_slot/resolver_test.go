package select_slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

// fixedRandom всегда возвращает заданный индекс
type fixedRandom int

func (r fixedRandom) IntN(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

// cyclingRandom перебирает индексы по кругу
type cyclingRandom struct{ next int }

func (r *cyclingRandom) IntN(n int) int {
	v := r.next % n
	r.next++
	return v
}

func testRoster() domain.Roster {
	roster, _ := domain.NewRoster([]domain.Staff{
		{ID: 7, FirstName: "Ann"},
		{ID: 9, FirstName: "Bo"},
		{ID: 11, FirstName: "Cy"},
	})
	return roster
}

func TestResolveStaff_Specific(t *testing.T) {
	slot := domain.TimeSlot{Time: "10:00", Staffs: []int64{7, 9}}

	staff, err := ResolveStaff(domain.SpecificStaff(9), slot, testRoster(), fixedRandom(0))
	require.NoError(t, err)
	assert.Equal(t, "Bo", staff.FirstName)

	_, err = ResolveStaff(domain.SpecificStaff(42), slot, testRoster(), fixedRandom(0))
	assert.ErrorIs(t, err, ErrStaleAvailability)
}

func TestResolveStaff_AnyPicksFromCandidates(t *testing.T) {
	slot := domain.TimeSlot{Time: "10:00", Staffs: []int64{7, 11}}
	rnd := &cyclingRandom{}

	seen := make(map[int64]int)
	for i := 0; i < 10; i++ {
		staff, err := ResolveStaff(domain.AnyStaff(), slot, testRoster(), rnd)
		require.NoError(t, err)
		assert.True(t, slot.HasCandidate(staff.ID), "staff %d is not a candidate", staff.ID)
		seen[staff.ID]++
	}

	// Каждый кандидат достижим
	assert.Equal(t, map[int64]int{7: 5, 11: 5}, seen)
}

func TestResolveStaff_AnyWithDefaultRandom(t *testing.T) {
	slot := domain.TimeSlot{Time: "10:00", Staffs: []int64{7, 9, 11}}
	for i := 0; i < 50; i++ {
		staff, err := ResolveStaff(domain.AnyStaff(), slot, testRoster(), nil)
		require.NoError(t, err)
		assert.True(t, slot.HasCandidate(staff.ID))
	}
}

func TestResolveStaff_Errors(t *testing.T) {
	tests := []struct {
		name      string
		selection domain.StaffSelection
		slot      domain.TimeSlot
		wantErr   error
	}{
		{
			name:      "candidate missing from roster",
			selection: domain.AnyStaff(),
			slot:      domain.TimeSlot{Time: "10:00", Staffs: []int64{99}},
			wantErr:   ErrStaleAvailability,
		},
		{
			name:      "reserved id among candidates",
			selection: domain.AnyStaff(),
			slot:      domain.TimeSlot{Time: "10:00", Staffs: []int64{7, 0}},
			wantErr:   ErrMalformedAvailability,
		},
		{
			name:      "no candidates",
			selection: domain.AnyStaff(),
			slot:      domain.TimeSlot{Time: "10:00"},
			wantErr:   ErrMalformedAvailability,
		},
		{
			name:      "unset selection",
			selection: domain.StaffSelection{},
			slot:      domain.TimeSlot{Time: "10:00", Staffs: []int64{7}},
			wantErr:   ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveStaff(tt.selection, tt.slot, testRoster(), fixedRandom(0))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplySelection(t *testing.T) {
	original := domain.Reservation{
		ID:            100,
		CustomerID:    5,
		CustomerName:  "Jane",
		CustomerPhone: "+100",
		ServiceIDs:    []int64{3, 4},
		Note:          "window seat",
		Status:        "CONFIRMED",
		StoreUUID:     "store-1",
		Staff:         domain.Staff{ID: 7, FirstName: "Ann"},
		BookingTime:   "10/05/2024 10:00",
	}
	staff := domain.Staff{ID: 9, FirstName: "Bo", WorkingDays: domain.WorkingDays{1, 3}}
	date := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)

	updated := ApplySelection(original, staff, date, domain.TimeSlot{Time: types.TimeString("15:30"), Staffs: []int64{9}})

	assert.Equal(t, "12/05/2024 15:30", updated.BookingTime)
	assert.Equal(t, staff, updated.Staff)

	// Остальные поля не меняются
	updated.Staff = original.Staff
	updated.BookingTime = original.BookingTime
	assert.Equal(t, original, updated)

	// Исходное бронирование не затронуто
	updated.ServiceIDs[0] = 99
	assert.Equal(t, []int64{3, 4}, original.ServiceIDs)
	assert.Equal(t, "10/05/2024 10:00", original.BookingTime)
}

func TestSelect_EndToEnd(t *testing.T) {
	reservation := domain.Reservation{ID: 1, Staff: domain.Staff{ID: 7}, BookingTime: "01/05/2024 09:00"}
	roster := []domain.Staff{{ID: 7, FirstName: "Ann"}, {ID: 9, FirstName: "Bo"}}
	slot := domain.TimeSlot{Time: "15:00", Staffs: []int64{9}}
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	updated, staff, err := Select(domain.AnyStaff(), slot, reservation, date, roster, fixedRandom(0))
	require.NoError(t, err)
	assert.Equal(t, int64(9), staff.ID)
	assert.Equal(t, int64(9), updated.Staff.ID)
	assert.Equal(t, "10/05/2024 15:00", updated.BookingTime)

	unchanged, _, err := Select(domain.SpecificStaff(42), slot, reservation, date, roster, nil)
	assert.ErrorIs(t, err, ErrStaleAvailability)
	assert.Equal(t, reservation, unchanged)
}
