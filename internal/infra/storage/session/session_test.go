package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestSession(id string) *domain.Session {
	res := domain.Reservation{
		ID:          42,
		CustomerID:  7,
		ServiceIDs:  []int64{1, 2},
		Staff:       domain.Staff{ID: 3, FirstName: "Ann", WorkingDays: domain.WorkingDays{1, 2}},
		BookingTime: "10/05/2024 10:00",
	}
	return domain.NewSession(id, res, testNow, 30*time.Minute)
}

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(&fakeClock{now: testNow})

	require.NoError(t, repo.Create(ctx, newTestSession("s1")))
	assert.ErrorIs(t, repo.Create(ctx, newTestSession("s1")), ErrSessionExists)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, got.State)
	assert.Equal(t, int64(42), got.Reservation.ID)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), ErrSessionNotFound)
}

func TestMemoryRepository_ReturnedSessionIsDetached(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(&fakeClock{now: testNow})
	require.NoError(t, repo.Create(ctx, newTestSession("s1")))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	got.State = domain.StateResolved
	got.Reservation.ServiceIDs[0] = 99

	again, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, again.State)
	assert.Equal(t, []int64{1, 2}, again.Reservation.ServiceIDs)
}

func TestMemoryRepository_UpdateErrorLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(&fakeClock{now: testNow})
	require.NoError(t, repo.Create(ctx, newTestSession("s1")))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "s1", func(s *domain.Session) error {
		s.Generation = 10
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.Generation)

	_, err = repo.Update(ctx, "missing", func(*domain.Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryRepository_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(&fakeClock{now: testNow})
	require.NoError(t, repo.Create(ctx, newTestSession("s1")))

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "s1", func(s *domain.Session) error {
				s.Generation++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(workers), got.Generation)
}

func TestMemoryRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	repo := NewMemoryRepository(clock)
	require.NoError(t, repo.Create(ctx, newTestSession("s1")))
	require.NoError(t, repo.Create(ctx, newTestSession("s2")))

	clock.Advance(31 * time.Minute)

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	purged, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged) // s1 уже удалена при чтении

	// Истекшую сессию можно создать заново с тем же id
	assert.NoError(t, repo.Create(ctx, domain.NewSession("s1", domain.Reservation{}, clock.Now(), time.Minute)))
}

func TestMemoryRepository_CountActive(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: testNow}
	repo := NewMemoryRepository(clock)
	require.NoError(t, repo.Create(ctx, newTestSession("s1")))
	require.NoError(t, repo.Create(ctx, newTestSession("s2")))

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	clock.Advance(31 * time.Minute)

	// s1 удаляется при чтении, s2 остается в карте до уборки, но уже не считается
	_, err = repo.Get(ctx, "s1")
	require.ErrorIs(t, err, ErrSessionNotFound)
	active, err = repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, active)
}

func TestRecord_RoundTrip(t *testing.T) {
	s := newTestSession("s1")
	require.NoError(t, s.ChooseContext(domain.SpecificStaff(3), time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)))
	gen, err := s.BeginFetch()
	require.NoError(t, err)
	require.NoError(t, s.CompleteFetch(gen,
		[]domain.TimeSlot{{Time: types.TimeString("10:00"), Staffs: []int64{3}}},
		[]domain.Staff{{ID: 3, FirstName: "Ann"}}, nil))
	_, err = s.ChooseSlot("10:00")
	require.NoError(t, err)
	require.NoError(t, s.Resolve(domain.Reservation{ID: 42, BookingTime: "11/05/2024 10:00"}))

	data, err := encode(s)
	require.NoError(t, err)
	got, err := decode(data)
	require.NoError(t, err)

	assert.Equal(t, domain.StateResolved, got.State)
	assert.Equal(t, s.Selection, got.Selection)
	assert.True(t, s.Date.Equal(got.Date))
	assert.Equal(t, gen, got.Generation)
	assert.Equal(t, s.Slots, got.Slots)
	assert.Equal(t, int64(3), got.Roster[0].ID)
	require.NotNil(t, got.ChosenSlot)
	assert.Equal(t, types.TimeString("10:00"), got.ChosenSlot.Time)
	require.NotNil(t, got.Result)
	assert.Equal(t, "11/05/2024 10:00", got.Result.BookingTime)
	assert.Equal(t, domain.WorkingDays{1, 2}, got.Reservation.Staff.WorkingDays)
}

func TestRecord_AnySelectionAndEmptySlots(t *testing.T) {
	s := newTestSession("s1")
	require.NoError(t, s.ChooseContext(domain.AnyStaff(), testNow))
	gen, err := s.BeginFetch()
	require.NoError(t, err)
	require.NoError(t, s.CompleteFetch(gen, nil, nil, errors.New("timeout")))

	data, err := encode(s)
	require.NoError(t, err)
	got, err := decode(data)
	require.NoError(t, err)

	assert.True(t, got.Selection.IsAny())
	assert.True(t, got.FetchFailed)
	assert.NotNil(t, got.Slots)
	assert.Empty(t, got.Slots)
}

func TestPostgresQueries(t *testing.T) {
	clock := &fakeClock{now: testNow}

	query, args, err := buildSelect("s1", clock, true)
	require.NoError(t, err)
	assert.Equal(t, "SELECT payload FROM reschedule_sessions WHERE id = $1 AND expires_at > $2 FOR UPDATE", query)
	assert.Equal(t, []interface{}{"s1", testNow}, args)

	query, _, err = buildSelect("s1", clock, false)
	require.NoError(t, err)
	assert.NotContains(t, query, "FOR UPDATE")

	s := newTestSession("s1")
	query, args, err = buildUpdate(s, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE reschedule_sessions SET payload = $1, generation = $2, state = $3, expires_at = $4, updated_at = $5 WHERE id = $6", query)
	assert.Equal(t, "s1", args[5])

	query, args, err = buildInsert(s, []byte(`{}`))
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO reschedule_sessions (id,payload,generation,state,expires_at,created_at,updated_at)")
	assert.Len(t, args, 7)
}

func TestRedisRepository_KeyAndTTL(t *testing.T) {
	clock := &fakeClock{now: testNow}
	repo := NewRedisRepository(nil, "", clock)

	assert.Equal(t, DefaultKeyPrefix+"s1", repo.key("s1"))

	s := newTestSession("s1")
	assert.Equal(t, 30*time.Minute, repo.ttl(s))

	clock.Advance(time.Hour)
	assert.Equal(t, time.Second, repo.ttl(s))
}
