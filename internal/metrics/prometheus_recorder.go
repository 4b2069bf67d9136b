package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "fiscalsim"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stepDuration     *prom.HistogramVec
	runDuration      prom.Histogram
	yearsSimulated   prom.Counter
	runOutcomes      *prom.CounterVec
	debtToGDP        prom.Gauge
	postProcessFails *prom.CounterVec
}

// NewPrometheusRecorder constructs the run metrics and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stepDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of individual year-loop steps",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		}, []string{"step"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total simulation run duration",
			Buckets:   prom.DefBuckets,
		}),
		yearsSimulated: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "years_simulated_total",
			Help:      "Simulated years recorded into a ledger",
		}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Runs by final status",
		}, []string{"outcome"}),
		debtToGDP: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "debt_to_gdp_ratio",
			Help:      "Debt-to-GDP ratio of the most recently simulated year",
		}),
		postProcessFails: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "post_process_failures_total",
			Help:      "Report, artifact, store and publish failures",
		}, []string{"stage"}),
	}
	reg.MustRegister(pr.stepDuration, pr.runDuration, pr.yearsSimulated, pr.runOutcomes, pr.debtToGDP, pr.postProcessFails)
	return pr
}

func (p *PrometheusRecorder) ObserveStepDuration(step string, d time.Duration) {
	if p == nil || p.stepDuration == nil {
		return
	}
	p.stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncYearsSimulated() {
	if p == nil || p.yearsSimulated == nil {
		return
	}
	p.yearsSimulated.Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcomes == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDebtToGDP(ratio float64) {
	if p == nil || p.debtToGDP == nil {
		return
	}
	p.debtToGDP.Set(ratio)
}

func (p *PrometheusRecorder) IncPostProcessFailure(stage string) {
	if p == nil || p.postProcessFails == nil {
		return
	}
	p.postProcessFails.WithLabelValues(stage).Inc()
}
