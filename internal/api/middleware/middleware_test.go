package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RescheduleService/pkg/authctx"
	"github.com/m04kA/SMC-RescheduleService/pkg/logger"
	"github.com/m04kA/SMC-RescheduleService/pkg/metrics"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

// echoToken отвечает токеном из контекста
var echoToken = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	token, _ := authctx.BearerToken(r.Context())
	_, _ = w.Write([]byte(token))
})

func TestAuth(t *testing.T) {
	valid := signedToken(t, time.Now().Add(time.Hour))
	expired := signedToken(t, time.Now().Add(-time.Hour))

	tests := []struct {
		name       string
		required   bool
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid jwt", required: true, header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: valid},
		{name: "opaque token", required: true, header: "bearer opaque", wantStatus: http.StatusOK, wantBody: "opaque"},
		{name: "missing required", required: true, wantStatus: http.StatusUnauthorized},
		{name: "missing optional", required: false, wantStatus: http.StatusOK, wantBody: ""},
		{name: "wrong scheme", required: false, header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "expired", required: false, header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(tt.required, logger.NewNop())(echoToken)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/staff-options", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := metrics.New("test")

	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/reschedule-sessions/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reschedule-sessions/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var found bool
	for _, family := range families {
		if !strings.HasSuffix(family.GetName(), "http_requests_total") {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == "/reschedule-sessions/{sessionId}" {
				found = true
				assert.Equal(t, float64(3), metric.GetCounter().GetValue())
			}
		}
	}
	assert.True(t, found, "expected series labelled with the route template")
}

func TestRecover(t *testing.T) {
	handler := Recover(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2, time.Minute, false)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))

	// Другой адрес имеет свой бюджет
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1000"))
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Minute, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:5000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", rl.clientIP(req))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, time.Minute, false)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(30 * time.Second)
	rl.getLimiter("b")
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, rl.Cleanup())
	_, stillThere := rl.visitors["b"]
	assert.True(t, stillThere)
}
