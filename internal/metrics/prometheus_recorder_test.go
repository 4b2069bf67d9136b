package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStepDuration("debt", 150*time.Microsecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncYearsSimulated()
	pr.IncYearsSimulated()
	pr.IncRunOutcome(OutcomeCompleted)
	pr.SetDebtToGDP(0.42)
	pr.IncPostProcessFailure("report")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
	byName := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		byName[mf.GetName()] = mf
	}
	if got := byName["fiscalsim_years_simulated_total"].GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("years simulated = %v, want 2", got)
	}
	if got := byName["fiscalsim_debt_to_gdp_ratio"].GetMetric()[0].GetGauge().GetValue(); got != 0.42 {
		t.Fatalf("debt/gdp = %v, want 0.42", got)
	}
	if got := byName["fiscalsim_run_outcomes_total"].GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("completed runs = %v, want 1", got)
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStepDuration("debt", time.Millisecond)
	pr.IncYearsSimulated()
	pr.IncRunOutcome(OutcomeFailed)
	pr.SetDebtToGDP(1)
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncYearsSimulated()

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fiscalsim_years_simulated_total") {
		t.Fatalf("metrics body missing counter:\n%s", rec.Body.String())
	}
}
