package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

// SessionState is the state of one reservation-edit interaction
type SessionState string

const (
	StateIdle                 SessionState = "idle"
	StateDateChosen           SessionState = "date_chosen"
	StateFetchingAvailability SessionState = "fetching_availability"
	StateSlotsReady           SessionState = "slots_ready"
	StateSlotChosen           SessionState = "slot_chosen"
	StateResolved             SessionState = "resolved"
)

// Session tracks slot selection for a single reservation.
//
// Every change of staff or date starts a new generation. Fetch results carry the generation
// they were started with and are applied only while it is still the current one.
type Session struct {
	ID          string
	Reservation Reservation // as supplied by the caller, never modified
	Selection   StaffSelection
	Date        time.Time
	Generation  uint64
	State       SessionState

	Slots       []TimeSlot
	Roster      []Staff // roster snapshot taken with Slots
	FetchFailed bool
	FetchError  string

	ChosenSlot *TimeSlot
	Result     *Reservation

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// NewSession starts an idle session for reservation
func NewSession(id string, reservation Reservation, now time.Time, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Session{
		ID:          id,
		Reservation: reservation.Clone(),
		State:       StateIdle,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// ChooseContext sets the staff selection and date. Allowed from any state: whatever was
// computed or chosen for the previous context is discarded.
func (s *Session) ChooseContext(selection StaffSelection, date time.Time) error {
	if !selection.IsValid() {
		return fmt.Errorf("%w: invalid staff selection %s", ErrInvalidTransition, selection)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTransition)
	}

	s.Selection = selection
	s.Date = StartOfDay(date)
	s.State = StateDateChosen
	s.resetDerived()
	return nil
}

// BeginFetch moves to FetchingAvailability and returns the generation of the new request
func (s *Session) BeginFetch() (uint64, error) {
	if s.State != StateDateChosen {
		return 0, fmt.Errorf("%w: cannot fetch from %s", ErrInvalidTransition, s.State)
	}
	s.Generation++
	s.State = StateFetchingAvailability
	return s.Generation, nil
}

// CompleteFetch applies the result of the request started with generation.
// A result for any other generation is rejected with ErrStaleGeneration.
// A fetch error leaves an empty slot list flagged as failed.
func (s *Session) CompleteFetch(generation uint64, slots []TimeSlot, roster []Staff, fetchErr error) error {
	if generation != s.Generation {
		return fmt.Errorf("%w: got %d, current %d", ErrStaleGeneration, generation, s.Generation)
	}
	if s.State != StateFetchingAvailability {
		return fmt.Errorf("%w: cannot complete fetch from %s", ErrInvalidTransition, s.State)
	}

	s.State = StateSlotsReady
	if fetchErr != nil {
		s.Slots = []TimeSlot{}
		s.Roster = nil
		s.FetchFailed = true
		s.FetchError = fetchErr.Error()
		return nil
	}

	s.Slots = make([]TimeSlot, len(slots))
	for i, slot := range slots {
		s.Slots[i] = slot.Clone()
	}
	s.Roster = append([]Staff(nil), roster...)
	s.FetchFailed = false
	s.FetchError = ""
	return nil
}

// ChooseSlot picks a slot from the most recently computed list
func (s *Session) ChooseSlot(time types.TimeString) (TimeSlot, error) {
	switch s.State {
	case StateSlotsReady, StateSlotChosen, StateResolved:
	default:
		return TimeSlot{}, fmt.Errorf("%w: cannot choose a slot from %s", ErrInvalidTransition, s.State)
	}

	slot, ok := FindSlot(s.Slots, time)
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: %s", ErrSlotNotOffered, time)
	}

	s.ChosenSlot = &slot
	s.Result = nil
	s.State = StateSlotChosen
	return slot.Clone(), nil
}

// Resolve stores the updated reservation produced for the chosen slot
func (s *Session) Resolve(result Reservation) error {
	if s.State != StateSlotChosen || s.ChosenSlot == nil {
		return fmt.Errorf("%w: cannot resolve from %s", ErrInvalidTransition, s.State)
	}
	resolved := result.Clone()
	s.Result = &resolved
	s.State = StateResolved
	return nil
}

// Touch updates the modification time and extends expiry
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// IsExpired reports whether the session outlived its TTL
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s *Session) resetDerived() {
	s.Slots = nil
	s.Roster = nil
	s.FetchFailed = false
	s.FetchError = ""
	s.ChosenSlot = nil
	s.Result = nil
}
