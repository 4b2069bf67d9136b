package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
	"github.com/deluair/BD-publicfinance-simulation/internal/metrics"
	"github.com/deluair/BD-publicfinance-simulation/internal/runstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := runstore.NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := t.Context()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveRun(ctx, runstore.Run{
		ID: "run-a", Seed: 7, StartYear: 2025, EndYear: 2026,
		Status: "completed", YearsCompleted: 2, Started: started, Finished: started.Add(time.Second),
	}))
	for _, year := range []int{2025, 2026} {
		e := ledger.NewEntry(year)
		e.SetFloat(ledger.MetricGDP, 1000+float64(year-2025)*100)
		require.NoError(t, store.AppendYear(ctx, "run-a", e))
	}
	require.NoError(t, store.SaveRun(ctx, runstore.Run{
		ID: "run-b", Seed: 8, StartYear: 2025, EndYear: 2030,
		Status: runstore.StatusRunning, Started: started.Add(time.Hour),
	}))

	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.IncYearsSimulated()

	return NewServer(":0", store, reg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	require.True(t, env.Success)
	return env.Data
}

func TestHealthEndpoint(t *testing.T) {
	w := get(t, newTestServer(t), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode[map[string]string](t, w)
	assert.Equal(t, "healthy", data["status"])
}

func TestListRuns(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/runs")
	require.Equal(t, http.StatusOK, w.Code)
	runs := decode[[]runstore.Run](t, w)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-b", runs[0].ID)

	w = get(t, s, "/runs?limit=1")
	require.Len(t, decode[[]runstore.Run](t, w), 1)

	w = get(t, s, "/runs?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be a non-negative integer")
}

func TestGetRun(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/runs/run-a")
	require.Equal(t, http.StatusOK, w.Code)
	run := decode[runstore.Run](t, w)
	assert.Equal(t, uint64(7), run.Seed)
	assert.Equal(t, "completed", run.Status)

	w = get(t, s, "/runs/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestLedgerEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/runs/run-a/ledger")
	require.Equal(t, http.StatusOK, w.Code)
	table := decode[ledger.Table](t, w)
	assert.Equal(t, []int{2025, 2026}, table.Years())
	v, ok := table.Value(2026, ledger.MetricGDP)
	require.True(t, ok)
	assert.InDelta(t, 1100.0, v.Float, 1e-9)

	w = get(t, s, "/runs/run-a/ledger.csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Year,GDP,"))
	assert.True(t, strings.HasPrefix(lines[1], "2025,1000,NA,"))

	assert.Equal(t, http.StatusNotFound, get(t, s, "/runs/missing/ledger").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/runs/missing/ledger.csv").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	w := get(t, newTestServer(t), "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fiscalsim_years_simulated_total 1")
}
