package delete_session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RescheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-RescheduleService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("Delete", mock.Anything, "s-1").Return(nil)
	svc.On("Delete", mock.Anything, "gone").Return(sessions.ErrSessionNotFound)
	svc.On("Delete", mock.Anything, "broken").Return(errors.New("redis down"))

	router := mux.NewRouter()
	router.HandleFunc("/reschedule-sessions/{sessionId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	cases := map[string]int{
		"s-1":    http.StatusNoContent,
		"gone":   http.StatusNotFound,
		"broken": http.StatusInternalServerError,
	}
	for id, want := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/reschedule-sessions/"+id, nil))
		assert.Equal(t, want, rec.Code, id)
	}
}
