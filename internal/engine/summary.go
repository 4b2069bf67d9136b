package engine

import (
	"errors"
	"time"

	"github.com/deluair/BD-publicfinance-simulation/internal/metrics"
	"github.com/deluair/BD-publicfinance-simulation/internal/sectors"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Status is the final state of a run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusFailed    Status = "failed"
)

func (s Status) outcome() metrics.OutcomeLabel {
	switch s {
	case StatusCompleted:
		return metrics.OutcomeCompleted
	case StatusCanceled:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}

// Summary describes a finished run.
type Summary struct {
	RunID          string                         `json:"run_id"`
	Seed           uint64                         `json:"seed"`
	StartYear      int                            `json:"start_year"`
	EndYear        int                            `json:"end_year"`
	YearsCompleted int                            `json:"years_completed"`
	Status         Status                         `json:"status"`
	Started        time.Time                      `json:"started"`
	Finished       time.Time                      `json:"finished"`
	Lifecycles     map[state.Sector]sectors.Phase `json:"-"`
	// Errors holds the run error, if any, followed by post-processing and
	// observer failures. None of the latter change Status.
	Errors []string `json:"errors,omitempty"`
}

// Duration returns how long the run took.
func (s *Summary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}

// AddIssue records a non-fatal failure against the run.
func (s *Summary) AddIssue(err error) {
	if err == nil {
		return
	}
	s.Errors = append(s.Errors, err.Error())
}

func joinErrors(errs []error) error {
	return errors.Join(errs...)
}
