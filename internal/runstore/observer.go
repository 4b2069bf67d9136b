package runstore

import (
	"context"
	"time"

	"github.com/deluair/BD-publicfinance-simulation/internal/engine"
	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

// Metadata is stored alongside every run the observer records.
type Metadata struct {
	ConfigPath string
	Commit     string
	Dirty      bool
}

// Observer records a run into a Store as it progresses: the run row on
// start, one ledger row per completed year, and the final status.
type Observer struct {
	Store Store
	Meta  Metadata

	started time.Time
}

// NewObserver returns an engine observer writing to store.
func NewObserver(store Store, meta Metadata) *Observer {
	return &Observer{Store: store, Meta: meta}
}

func (o *Observer) OnRunStart(ctx context.Context, run engine.RunInfo) error {
	o.started = time.Now()
	return o.Store.SaveRun(ctx, Run{
		ID:         run.RunID,
		Seed:       run.Seed,
		StartYear:  run.StartYear,
		EndYear:    run.EndYear,
		Status:     StatusRunning,
		Started:    o.started,
		ConfigPath: o.Meta.ConfigPath,
		Commit:     o.Meta.Commit,
		Dirty:      o.Meta.Dirty,
	})
}

func (o *Observer) OnStepComplete(int, state.Sector, time.Duration) {}

func (o *Observer) OnYearComplete(ctx context.Context, run engine.RunInfo, entry ledger.Entry) error {
	return o.Store.AppendYear(ctx, run.RunID, entry)
}

func (o *Observer) OnRunComplete(ctx context.Context, s *engine.Summary) error {
	return o.Store.SaveRun(ctx, FromSummary(s, o.Meta))
}

// FromSummary converts an engine summary into a stored run.
func FromSummary(s *engine.Summary, meta Metadata) Run {
	return Run{
		ID:             s.RunID,
		Seed:           s.Seed,
		StartYear:      s.StartYear,
		EndYear:        s.EndYear,
		Status:         string(s.Status),
		YearsCompleted: s.YearsCompleted,
		Started:        s.Started,
		Finished:       s.Finished,
		ConfigPath:     meta.ConfigPath,
		Commit:         meta.Commit,
		Dirty:          meta.Dirty,
		Errors:         s.Errors,
	}
}
