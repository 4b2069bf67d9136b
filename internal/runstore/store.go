// Package runstore persists simulation runs and their ledgers.
package runstore

import (
	"context"
	"time"

	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
)

// Run is the stored metadata of one simulation run.
type Run struct {
	ID             string    `json:"id"`
	Seed           uint64    `json:"seed"`
	StartYear      int       `json:"start_year"`
	EndYear        int       `json:"end_year"`
	Status         string    `json:"status"`
	YearsCompleted int       `json:"years_completed"`
	Started        time.Time `json:"started"`
	Finished       time.Time `json:"finished,omitzero"`
	ConfigPath     string    `json:"config_path,omitempty"`
	Commit         string    `json:"commit,omitempty"`
	Dirty          bool      `json:"dirty,omitempty"`
	Errors         []string  `json:"errors,omitempty"`
}

// StatusRunning marks a run that has started but not yet finished.
const StatusRunning = "running"

// Store defines the interface for persisting and retrieving runs.
type Store interface {
	// SaveRun inserts or replaces the run's metadata.
	SaveRun(ctx context.Context, run Run) error

	// AppendYear stores one ledger entry for a run.
	AppendYear(ctx context.Context, runID string, entry ledger.Entry) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (Run, error)

	// ListRuns returns the most recently started runs first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// LoadLedger rebuilds the ledger table of a run.
	LoadLedger(ctx context.Context, id string) (ledger.Table, error)

	// Close closes the store and releases resources.
	Close() error
}
