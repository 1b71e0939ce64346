package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func fixedNow() time.Time { return time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantCode   int
		wantStatus string
		wantMsg    string
	}{
		{"healthy", pingFunc(func(context.Context) error { return nil }), http.StatusOK, statusHealthy, ""},
		{"ping fails", pingFunc(func(context.Context) error { return errors.New("dial tcp: password=hunter2") }), http.StatusServiceUnavailable, statusUnhealthy, "database unreachable"},
		{"not configured", nil, http.StatusServiceUnavailable, statusUnhealthy, "not configured"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{DB: tt.db, Version: "1.2.3", Now: fixedNow}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "1.2.3", body.Version)
			assert.Equal(t, "2025-03-01T08:00:00Z", body.Timestamp)
			assert.Equal(t, tt.wantMsg, body.Checks["database"].Message)
			assert.NotContains(t, rec.Body.String(), "hunter2")
		})
	}
}

func TestHealthHandler_ReportsPoolStats(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(10)
	mock.ExpectPing()

	rec := httptest.NewRecorder()
	(&HealthHandler{DB: db, Version: "dev"}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	details := body.Checks["database"].Details
	assert.EqualValues(t, 10, details["max_open_connections"])
	assert.Contains(t, details, "utilization_percent")
	assert.NoError(t, mock.ExpectationsWereMet())
}

type fakeBreaker struct {
	name string
	open bool
}

func (b fakeBreaker) Name() string { return b.name }
func (b fakeBreaker) IsOpen() bool { return b.open }

func TestHealthHandler_Breakers(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	h := &HealthHandler{DB: ok, Breakers: []Breaker{
		fakeBreaker{name: "store.news"},
		fakeBreaker{name: "store.download", open: true},
	}}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, statusDegraded, body.Status)
	cb := body.Checks["circuit_breakers"]
	assert.Equal(t, "open: store.download", cb.Message)
	assert.Equal(t, "closed", cb.Details["store.news"])
	assert.Equal(t, "open", cb.Details["store.download"])
}

func TestReadyHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&ReadyHandler{DB: pingFunc(func(context.Context) error { return nil })}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())

	rec = httptest.NewRecorder()
	(&ReadyHandler{DB: pingFunc(func(context.Context) error { return errors.New("down") })}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	(&ReadyHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LiveHandler{}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}
