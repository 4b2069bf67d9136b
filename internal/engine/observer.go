package engine

import (
	"context"
	"time"

	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
	"github.com/deluair/BD-publicfinance-simulation/internal/metrics"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Observer receives callbacks around the year loop. Returned errors are
// logged by the engine and never abort the run.
type Observer interface {
	OnRunStart(ctx context.Context, run RunInfo) error
	OnStepComplete(year int, step state.Sector, d time.Duration)
	OnYearComplete(ctx context.Context, run RunInfo, entry ledger.Entry) error
	OnRunComplete(ctx context.Context, summary *Summary) error
}

// RunInfo identifies the run an observer callback belongs to.
type RunInfo struct {
	RunID     string `json:"run_id"`
	Seed      uint64 `json:"seed"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnRunStart(context.Context, RunInfo) error                   { return nil }
func (NoopObserver) OnStepComplete(int, state.Sector, time.Duration)             {}
func (NoopObserver) OnYearComplete(context.Context, RunInfo, ledger.Entry) error { return nil }
func (NoopObserver) OnRunComplete(context.Context, *Summary) error               { return nil }

// MultiObserver fans callbacks out to every member in order and joins their
// errors.
type MultiObserver []Observer

func (m MultiObserver) OnRunStart(ctx context.Context, run RunInfo) error {
	var errs []error
	for _, o := range m {
		errs = append(errs, o.OnRunStart(ctx, run))
	}
	return joinErrors(errs)
}

func (m MultiObserver) OnStepComplete(year int, step state.Sector, d time.Duration) {
	for _, o := range m {
		o.OnStepComplete(year, step, d)
	}
}

func (m MultiObserver) OnYearComplete(ctx context.Context, run RunInfo, entry ledger.Entry) error {
	var errs []error
	for _, o := range m {
		errs = append(errs, o.OnYearComplete(ctx, run, entry))
	}
	return joinErrors(errs)
}

func (m MultiObserver) OnRunComplete(ctx context.Context, summary *Summary) error {
	var errs []error
	for _, o := range m {
		errs = append(errs, o.OnRunComplete(ctx, summary))
	}
	return joinErrors(errs)
}

// RecorderObserver adapts metrics.Recorder into an Observer.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (r RecorderObserver) OnRunStart(context.Context, RunInfo) error { return nil }

func (r RecorderObserver) OnStepComplete(_ int, step state.Sector, d time.Duration) {
	if r.Recorder != nil {
		r.Recorder.ObserveStepDuration(string(step), d)
	}
}

func (r RecorderObserver) OnYearComplete(_ context.Context, _ RunInfo, entry ledger.Entry) error {
	if r.Recorder == nil {
		return nil
	}
	r.Recorder.IncYearsSimulated()
	if v := entry.Get(ledger.MetricDebtStockGDP); v.Valid {
		r.Recorder.SetDebtToGDP(v.Float)
	}
	return nil
}

func (r RecorderObserver) OnRunComplete(_ context.Context, summary *Summary) error {
	if r.Recorder != nil {
		r.Recorder.ObserveRunDuration(summary.Duration())
		r.Recorder.IncRunOutcome(summary.Status.outcome())
	}
	return nil
}
