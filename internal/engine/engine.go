package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
	"github.com/deluair/BD-publicfinance-simulation/internal/sectors"
	"github.com/deluair/BD-publicfinance-simulation/internal/state"
)

const tracerName = "github.com/deluair/BD-publicfinance-simulation/internal/engine"

// Engine owns one simulation run.
type Engine struct {
	cfg       *config.Config
	seed      uint64
	streams   *sectors.Streams
	runID     string
	observers []Observer
	tracer    trace.Tracer
	logger    *slog.Logger

	registry *sectors.Registry
	shared   *state.Shared
	ledger   *ledger.Ledger
	steps    []Step
	ran      bool
}

// New validates cfg, builds every sector and checks the step plan. Any
// failure is a configuration error; no year has run yet.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ferrors.ConfigError("configuration is required").Build()
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, seed: cfg.Simulation.Seed}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	if e.streams == nil {
		if e.seed == 0 {
			seed, err := NewSeed()
			if err != nil {
				return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "generate run seed").Fatal().Build()
			}
			e.seed = seed
		}
		s := sectors.NewStreams(e.seed)
		e.streams = &s
	}

	e.registry = sectors.NewRegistry(cfg, *e.streams)
	sim := cfg.Simulation
	e.shared = state.New(state.Initial{
		GDP:           sim.InitialGDP,
		GDPGrowth:     sim.InitialGDPGrowth,
		RealGDPGrowth: sim.BaseRealGDPGrowth,
		Inflation:     sim.InitialInflation,
		NPLRatio:      cfg.Financial.InitialNPLRatio,
		DebtStock:     e.registry.Debt.InitialStock(),
	})
	e.ledger = ledger.New(sim.DuplicateYearPolicy)
	e.steps = e.buildPlan()

	if err := ValidatePlan(e.steps); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) buildPlan() []Step {
	r := e.registry
	econ := &economicUpdate{sim: e.cfg.Simulation, rng: e.streams.For(state.StepEconomic)}
	return []Step{
		econ.step(),
		bindSector(r.Governance, (*state.Shared).MergeGovernance),
		bindSector(r.Supervision, (*state.Shared).MergeSupervision),
		bindSector(r.Financial, (*state.Shared).MergeFinancial),
		bindSector(r.Monetary, (*state.Shared).MergeMonetary),
		bindSector(r.External, (*state.Shared).MergeExternal),
		bindSector(r.DevFinance, (*state.Shared).MergeDevFinance),
		bindSector(r.Revenue, (*state.Shared).MergeRevenue),
		bindSector(r.Federalism, (*state.Shared).MergeFederalism),
		bindSector(r.Expenditure, (*state.Shared).MergeExpenditure),
		bindSector(r.SOE, (*state.Shared).MergeSOE),
		aggregatesStep(),
		bindSector(r.Debt, (*state.Shared).MergeDebt),
		primaryDeficitStep(),
		bindSector(r.Coordination, (*state.Shared).MergeCoordination),
		e.snapshotStep(),
	}
}

func (e *Engine) snapshotStep() Step {
	return Step{
		Name: state.StepSnapshot,
		Consumes: []state.Dependency{
			state.Current(state.FieldPrimaryDeficit),
			state.Current(state.FieldCoordScore),
		},
		Run: func(year int, s *state.Shared) error {
			return e.ledger.Record(year, ledger.Snapshot(s.View()))
		},
	}
}

// RunID returns the run identifier.
func (e *Engine) RunID() string { return e.runID }

// Seed returns the seed the run uses.
func (e *Engine) Seed() uint64 { return e.seed }

// Plan returns the validated step plan.
func (e *Engine) Plan() []Step {
	out := make([]Step, len(e.steps))
	copy(out, e.steps)
	return out
}

// Ledger returns the run's ledger.
func (e *Engine) Ledger() *ledger.Ledger { return e.ledger }

// State returns a read-only view of the shared state.
func (e *Engine) State() state.View { return e.shared.View() }

// Registry returns the run's sector models.
func (e *Engine) Registry() *sectors.Registry { return e.registry }

// Info identifies the run for observers and stores.
func (e *Engine) Info() RunInfo {
	return RunInfo{
		RunID:     e.runID,
		Seed:      e.seed,
		StartYear: e.cfg.Simulation.StartYear,
		EndYear:   e.cfg.Simulation.EndYear,
	}
}

// Run simulates every year of the horizon in order. It returns the summary
// together with the error that stopped the run, if any: a step failure
// (StatusFailed) or the context error (StatusCanceled). Years completed
// before the stop stay in the ledger.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	if e.ran {
		return nil, ferrors.InternalError("engine already ran").Build()
	}
	e.ran = true

	info := e.Info()
	summary := &Summary{
		RunID:     info.RunID,
		Seed:      info.Seed,
		StartYear: info.StartYear,
		EndYear:   info.EndYear,
		Status:    StatusCompleted,
		Started:   time.Now(),
	}
	observer := MultiObserver(e.observers)
	log := e.logger.With(logfields.RunID(info.RunID))

	ctx, span := e.tracer.Start(ctx, "fiscalsim.run", trace.WithAttributes(
		attribute.String("run.id", info.RunID),
		attribute.Int("run.start_year", info.StartYear),
		attribute.Int("run.end_year", info.EndYear),
	))
	defer span.End()

	log.Info("Simulation started",
		logfields.Seed(info.Seed),
		slog.Int("start_year", info.StartYear),
		slog.Int("end_year", info.EndYear))
	e.notify(log, summary, "run_start", observer.OnRunStart(ctx, info))

	var runErr error
	for year := info.StartYear; year <= info.EndYear; year++ {
		if err := ctx.Err(); err != nil {
			summary.Status = StatusCanceled
			runErr = err
			log.Warn("Simulation canceled", logfields.Year(year), logfields.Error(err))
			break
		}
		if err := e.runYear(ctx, year, observer, log); err != nil {
			summary.Status = StatusFailed
			runErr = err
			log.Error("Simulation failed", logfields.Year(year), logfields.Error(err))
			break
		}
		summary.YearsCompleted++
		if entry, ok := e.ledger.Get(year); ok {
			e.notify(log, summary, "year_complete", observer.OnYearComplete(ctx, info, entry))
		}
	}

	summary.Finished = time.Now()
	summary.Lifecycles = e.registry.Lifecycles()
	if runErr != nil {
		summary.Errors = append([]string{runErr.Error()}, summary.Errors...)
		span.RecordError(runErr)
		span.SetStatus(codes.Error, string(summary.Status))
	}
	span.SetAttributes(attribute.Int("run.years_completed", summary.YearsCompleted))

	e.notify(log, summary, "run_complete", observer.OnRunComplete(ctx, summary))
	log.Info("Simulation finished",
		logfields.Status(string(summary.Status)),
		logfields.Years(summary.YearsCompleted),
		logfields.DurationMS(millis(summary.Duration())))
	return summary, runErr
}

func (e *Engine) runYear(ctx context.Context, year int, observer Observer, log *slog.Logger) error {
	_, span := e.tracer.Start(ctx, "fiscalsim.year", trace.WithAttributes(attribute.Int("year", year)))
	defer span.End()

	e.shared.BeginYear(year)
	for _, st := range e.steps {
		t0 := time.Now()
		err := st.Run(year, e.shared)
		d := time.Since(t0)
		observer.OnStepComplete(year, st.Name, d)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(st.Name))
			return stepError(year, st.Name, err)
		}
		log.Debug("Step complete", logfields.Year(year), logfields.Step(string(st.Name)), logfields.DurationMS(millis(d)))
	}
	return nil
}

func stepError(year int, step state.Sector, err error) error {
	if ce, ok := ferrors.AsClassified(err); ok {
		return ce.WithContext("year", year).WithContext("step", string(step))
	}
	return ferrors.WrapError(err, ferrors.CategorySimulation, fmt.Sprintf("step %s failed in %d", step, year)).
		Fatal().
		WithContext("year", year).
		WithContext("step", string(step)).
		Build()
}

// notify logs an observer failure and records it on the summary.
func (e *Engine) notify(log *slog.Logger, summary *Summary, hook string, err error) {
	if err == nil {
		return
	}
	log.Warn("Observer failed", slog.String("hook", hook), logfields.Error(err))
	summary.AddIssue(fmt.Errorf("observer %s: %w", hook, err))
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
