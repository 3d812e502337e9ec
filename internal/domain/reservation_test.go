package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

func TestFormatBookingTime(t *testing.T) {
	date := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "11/05/2024 10:00", FormatBookingTime(date, "10:00"))
}

func TestParseBookingTime(t *testing.T) {
	date, slotTime, err := ParseBookingTime("10/05/2024 09:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, types.TimeString("09:00"), slotTime)

	for _, bad := range []string{"", "10/05/2024", "2024-05-10 09:00", "10/05/2024 9am"} {
		_, _, err := ParseBookingTime(bad, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidBookingTime, bad)
	}
}

func TestReservation_Clone(t *testing.T) {
	original := Reservation{
		ID:         1,
		ServiceIDs: []int64{10, 11},
		Staff:      Staff{ID: 5, WorkingDays: WorkingDays{1, 2}},
	}

	clone := original.Clone()
	clone.ServiceIDs[0] = 99
	clone.Staff.WorkingDays[0] = 7

	assert.Equal(t, []int64{10, 11}, original.ServiceIDs)
	assert.Equal(t, WorkingDays{1, 2}, original.Staff.WorkingDays)
}
