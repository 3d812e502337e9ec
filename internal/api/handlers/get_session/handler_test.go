package get_session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RescheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-RescheduleService/internal/service/sessions/models"
	"github.com/m04kA/SMC-RescheduleService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Get(ctx context.Context, id string) (*models.SessionResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.SessionResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, "s-1").Return(&models.SessionResponse{ID: "s-1", State: "slots_ready"}, nil)
	svc.On("Get", mock.Anything, "gone").Return(nil, sessions.ErrSessionNotFound)

	router := mux.NewRouter()
	router.HandleFunc("/reschedule-sessions/{sessionId}", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reschedule-sessions/s-1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"slots_ready"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reschedule-sessions/gone", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
