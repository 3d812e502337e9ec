package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/pkg/logger"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchRoster(ctx context.Context, activeOnly bool) ([]domain.Staff, error) {
	args := m.Called(ctx, activeOnly)
	staff, _ := args.Get(0).([]domain.Staff)
	return staff, args.Error(1)
}

func TestListOptions(t *testing.T) {
	source := &mockSource{}
	source.On("FetchRoster", mock.Anything, true).Return([]domain.Staff{
		{ID: 7, FirstName: "Ann", LastName: "Lee"},
		{ID: 0, FirstName: "Ghost"},
		{ID: 9, Nickname: "Bo"},
	}, nil)

	svc := NewService(source, logger.NewNop())
	resp, err := svc.ListOptions(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, resp.Options, 3)
	assert.True(t, resp.Options[0].Selection.IsAny())
	assert.Nil(t, resp.Options[0].Staff)
	assert.Equal(t, AnyOptionLabel, resp.Options[0].Label)

	assert.Equal(t, "Ann Lee", resp.Options[1].Label)
	assert.Equal(t, int64(7), resp.Options[1].Staff.ID)
	assert.Equal(t, "Bo", resp.Options[2].Label)
	assert.Equal(t, 1, resp.Dropped)
	source.AssertExpectations(t)
}

func TestListOptions_IncludeInactive(t *testing.T) {
	source := &mockSource{}
	source.On("FetchRoster", mock.Anything, false).Return([]domain.Staff{}, nil)

	resp, err := NewService(source, logger.NewNop()).ListOptions(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, resp.Options, 1)
	source.AssertExpectations(t)
}

func TestListOptions_SourceError(t *testing.T) {
	source := &mockSource{}
	source.On("FetchRoster", mock.Anything, true).Return(nil, errors.New("boom"))

	_, err := NewService(source, logger.NewNop()).ListOptions(context.Background(), false)
	assert.ErrorIs(t, err, ErrRosterUnavailable)
}
