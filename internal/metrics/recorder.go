package metrics

import "time"

// OutcomeLabel enumerates run outcomes for counters.
type OutcomeLabel string

const (
	OutcomeCompleted OutcomeLabel = "completed"
	OutcomeCanceled  OutcomeLabel = "canceled"
	OutcomeFailed    OutcomeLabel = "failed"
)

// Recorder defines observability hooks for simulation runs. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveStepDuration(step string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncYearsSimulated()
	IncRunOutcome(outcome OutcomeLabel)
	SetDebtToGDP(ratio float64)
	IncPostProcessFailure(stage string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStepDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)          {}
func (NoopRecorder) IncYearsSimulated()                        {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                {}
func (NoopRecorder) SetDebtToGDP(float64)                      {}
func (NoopRecorder) IncPostProcessFailure(string)              {}
