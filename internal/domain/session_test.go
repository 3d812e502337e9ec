package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionNow = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func newTestSession() *Session {
	return NewSession("s-1", Reservation{ID: 1, BookingTime: "10/05/2024 09:00"}, sessionNow, time.Hour)
}

func TestSession_HappyPath(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, StateIdle, s.State)

	require.NoError(t, s.ChooseContext(SpecificStaff(5), sessionNow.AddDate(0, 0, 1)))
	assert.Equal(t, StateDateChosen, s.State)

	gen, err := s.BeginFetch()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, StateFetchingAvailability, s.State)

	slots := []TimeSlot{{Time: "10:00", Staffs: []int64{5}}}
	require.NoError(t, s.CompleteFetch(gen, slots, []Staff{{ID: 5}}, nil))
	assert.Equal(t, StateSlotsReady, s.State)

	slot, err := s.ChooseSlot("10:00")
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, slot.Staffs)
	assert.Equal(t, StateSlotChosen, s.State)

	require.NoError(t, s.Resolve(Reservation{ID: 1, BookingTime: "11/05/2024 10:00"}))
	assert.Equal(t, StateResolved, s.State)
	require.NotNil(t, s.Result)
	assert.Equal(t, "11/05/2024 10:00", s.Result.BookingTime)
}

func TestSession_StaleGenerationRejected(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.ChooseContext(SpecificStaff(1), sessionNow))
	first, err := s.BeginFetch()
	require.NoError(t, err)

	require.NoError(t, s.ChooseContext(SpecificStaff(2), sessionNow.AddDate(0, 0, 1)))
	second, err := s.BeginFetch()
	require.NoError(t, err)

	require.NoError(t, s.CompleteFetch(second, []TimeSlot{{Time: "11:00", Staffs: []int64{2}}}, nil, nil))

	err = s.CompleteFetch(first, []TimeSlot{{Time: "15:00", Staffs: []int64{1}}}, nil, nil)
	assert.ErrorIs(t, err, ErrStaleGeneration)
	require.Len(t, s.Slots, 1)
	assert.Equal(t, "11:00", s.Slots[0].Time.String())
}

func TestSession_ContextChangeDiscardsChosenSlot(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.ChooseContext(AnyStaff(), sessionNow))
	gen, _ := s.BeginFetch()
	require.NoError(t, s.CompleteFetch(gen, []TimeSlot{{Time: "16:00", Staffs: []int64{1}}}, nil, nil))
	_, err := s.ChooseSlot("16:00")
	require.NoError(t, err)

	require.NoError(t, s.ChooseContext(AnyStaff(), sessionNow.AddDate(0, 0, 2)))

	assert.Equal(t, StateDateChosen, s.State)
	assert.Nil(t, s.ChosenSlot)
	assert.Nil(t, s.Slots)
}

func TestSession_FetchFailureLeavesEmptyList(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.ChooseContext(AnyStaff(), sessionNow))
	gen, _ := s.BeginFetch()

	require.NoError(t, s.CompleteFetch(gen, nil, nil, errors.New("connection refused")))

	assert.Equal(t, StateSlotsReady, s.State)
	assert.True(t, s.FetchFailed)
	assert.Empty(t, s.Slots)
	assert.Equal(t, "connection refused", s.FetchError)
}

func TestSession_InvalidTransitions(t *testing.T) {
	s := newTestSession()

	_, err := s.BeginFetch()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = s.ChooseSlot("10:00")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.ErrorIs(t, s.Resolve(Reservation{}), ErrInvalidTransition)
	assert.ErrorIs(t, s.ChooseContext(StaffSelection{}, sessionNow), ErrInvalidTransition)
}

func TestSession_ChooseSlotNotOffered(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.ChooseContext(SpecificStaff(1), sessionNow))
	gen, _ := s.BeginFetch()
	require.NoError(t, s.CompleteFetch(gen, []TimeSlot{{Time: "16:00", Staffs: []int64{1}}}, nil, nil))

	_, err := s.ChooseSlot("15:00")
	assert.ErrorIs(t, err, ErrSlotNotOffered)
	assert.Equal(t, StateSlotsReady, s.State)
}

func TestSession_Expiry(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.IsExpired(sessionNow.Add(59*time.Minute)))
	assert.True(t, s.IsExpired(sessionNow.Add(61*time.Minute)))

	s.Touch(sessionNow.Add(50*time.Minute), time.Hour)
	assert.False(t, s.IsExpired(sessionNow.Add(61*time.Minute)))
}
