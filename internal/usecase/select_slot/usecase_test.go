package select_slot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-RescheduleService/internal/infra/storage/session"
	"github.com/m04kA/SMC-RescheduleService/pkg/logger"
	"github.com/m04kA/SMC-RescheduleService/pkg/metrics"
)

var selectDate = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

// prepareSession создает сессию с готовым списком слотов
func prepareSession(t *testing.T, selection domain.StaffSelection, slots []domain.TimeSlot, roster []domain.Staff) *sessionRepo.MemoryRepository {
	t.Helper()
	ctx := context.Background()
	repo := sessionRepo.NewMemoryRepository(nil)

	reservation := domain.Reservation{
		ID:          77,
		CustomerID:  3,
		ServiceIDs:  []int64{1},
		Status:      "CONFIRMED",
		Staff:       domain.Staff{ID: 7, FirstName: "Ann"},
		BookingTime: "01/05/2024 09:00",
	}
	require.NoError(t, repo.Create(ctx, domain.NewSession("s1", reservation, time.Now(), time.Hour)))

	_, err := repo.Update(ctx, "s1", func(s *domain.Session) error {
		if err := s.ChooseContext(selection, selectDate); err != nil {
			return err
		}
		gen, err := s.BeginFetch()
		if err != nil {
			return err
		}
		return s.CompleteFetch(gen, slots, roster, nil)
	})
	require.NoError(t, err)
	return repo
}

func TestExecute_AnyStaffEndToEnd(t *testing.T) {
	roster := []domain.Staff{{ID: 7, FirstName: "Ann"}, {ID: 9, FirstName: "Bo"}}
	slots := []domain.TimeSlot{
		{Time: "15:00", Staffs: []int64{7}},
		{Time: "16:00", Staffs: []int64{9}},
	}
	repo := prepareSession(t, domain.AnyStaff(), slots, roster)
	uc := NewUseCase(repo, fixedRandom(0), metrics.New("select-test"), time.Hour, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "s1", Time: "16:00"})
	require.NoError(t, err)

	assert.Equal(t, int64(9), resp.Staff.ID)
	assert.Equal(t, int64(9), resp.Reservation.Staff.ID)
	assert.Equal(t, "10/05/2024 16:00", resp.Reservation.BookingTime)
	assert.Equal(t, int64(77), resp.Reservation.ID)
	assert.Equal(t, "CONFIRMED", resp.Reservation.Status)

	s, err := repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateResolved, s.State)
	require.NotNil(t, s.Result)
	assert.Equal(t, "10/05/2024 16:00", s.Result.BookingTime)
	// Исходное бронирование в сессии не меняется
	assert.Equal(t, "01/05/2024 09:00", s.Reservation.BookingTime)
}

func TestExecute_ReselectFromResolved(t *testing.T) {
	roster := []domain.Staff{{ID: 7}, {ID: 9}}
	slots := []domain.TimeSlot{{Time: "15:00", Staffs: []int64{7}}, {Time: "16:00", Staffs: []int64{9}}}
	repo := prepareSession(t, domain.SpecificStaff(7), slots, roster)
	uc := NewUseCase(repo, nil, nil, time.Hour, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1", Time: "15:00"})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "s1", Time: "16:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Staff.ID)
	assert.Equal(t, "10/05/2024 16:00", resp.Reservation.BookingTime)
}

func TestExecute_StaleRosterLeavesSessionUntouched(t *testing.T) {
	// Мастер 9 предложен бэкендом, но отсутствует в составе
	slots := []domain.TimeSlot{{Time: "15:00", Staffs: []int64{9}}}
	repo := prepareSession(t, domain.AnyStaff(), slots, []domain.Staff{{ID: 7}})
	m := metrics.New("select-test")
	uc := NewUseCase(repo, fixedRandom(0), m, time.Hour, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1", Time: "15:00"})
	assert.ErrorIs(t, err, ErrStaleAvailability)

	s, err := repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSlotsReady, s.State)
	assert.Nil(t, s.ChosenSlot)
	assert.Nil(t, s.Result)
}

func TestExecute_Errors(t *testing.T) {
	slots := []domain.TimeSlot{{Time: "15:00", Staffs: []int64{7, 0}}}
	repo := prepareSession(t, domain.AnyStaff(), slots, []domain.Staff{{ID: 7}})
	uc := NewUseCase(repo, fixedRandom(0), nil, time.Hour, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{SessionID: "s1", Time: "12:00"})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = uc.Execute(ctx, &Request{SessionID: "s1", Time: "15:00"})
	assert.ErrorIs(t, err, ErrMalformedAvailability)

	_, err = uc.Execute(ctx, &Request{SessionID: "missing", Time: "15:00"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = uc.Execute(ctx, &Request{SessionID: "s1", Time: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NoSlotsComputedYet(t *testing.T) {
	repo := sessionRepo.NewMemoryRepository(nil)
	require.NoError(t, repo.Create(context.Background(), domain.NewSession("s1", domain.Reservation{}, time.Now(), time.Hour)))
	uc := NewUseCase(repo, nil, nil, time.Hour, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1", Time: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

type conflictRepo struct{}

func (conflictRepo) Update(_ context.Context, id string, _ func(*domain.Session) error) (*domain.Session, error) {
	return nil, fmt.Errorf("%w: Update - 10 attempts for session %s", sessionRepo.ErrConflict, id)
}

func TestExecute_ConcurrentUpdateConflictIsSuperseded(t *testing.T) {
	uc := NewUseCase(conflictRepo{}, fixedRandom(0), nil, time.Hour, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "s1", Time: "10:00"})
	require.ErrorIs(t, err, ErrRequestSuperseded)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)
}
