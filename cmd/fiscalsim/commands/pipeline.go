package commands

import (
	"context"
	"fmt"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/deluair/BD-publicfinance-simulation/internal/artifacts"
	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/engine"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
	"github.com/deluair/BD-publicfinance-simulation/internal/metrics"
	"github.com/deluair/BD-publicfinance-simulation/internal/provenance"
	"github.com/deluair/BD-publicfinance-simulation/internal/publish"
	"github.com/deluair/BD-publicfinance-simulation/internal/report"
	"github.com/deluair/BD-publicfinance-simulation/internal/retry"
	"github.com/deluair/BD-publicfinance-simulation/internal/runstore"
)

// Post-processing stages, used as metric labels.
const (
	stageStore    = "store"
	stagePublish  = "publish"
	stageReport   = "report"
	stageArtifact = "artifact"
)

// runOptions are the per-invocation overrides of a simulation run.
type runOptions struct {
	OutputDir string
	Seed      uint64
	Formats   []config.ReportFormat
	NoStore   bool
	Publish   bool
}

// runResult is what one pipeline execution produced.
type runResult struct {
	Summary   *engine.Summary
	// Final is the last completed year, nil when no year completed.
	Final     *ledger.Entry
	Reports   []report.Artifact
	Artifacts []artifacts.Info
}

// pipeline runs a simulation and its post-processing. Failures after the
// simulation are logged, counted and recorded on the summary, never returned.
type pipeline struct {
	configPath string
	logger     *slog.Logger
	recorder   metrics.Recorder
	// store, when set, is shared across runs and not closed by the pipeline.
	store runstore.Store
}

func newPipeline(configPath string, logger *slog.Logger, reg *prom.Registry) *pipeline {
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if reg != nil {
		rec = metrics.NewPrometheusRecorder(reg)
	}
	return &pipeline{configPath: configPath, logger: logger, recorder: rec}
}

func (p *pipeline) postFailure(summary *engine.Summary, stage string, err error) {
	p.logger.Warn("Post-processing failed", slog.String("stage", stage), logfields.RunID(summary.RunID), logfields.Error(err))
	p.recorder.IncPostProcessFailure(stage)
	summary.AddIssue(err)
}

func (p *pipeline) execute(ctx context.Context, cfg *config.Config, opts runOptions) (*runResult, error) {
	if opts.Seed != 0 {
		cfg.Simulation.Seed = opts.Seed
	}
	if opts.OutputDir != "" {
		cfg.Output.Directory = opts.OutputDir
	}
	if len(opts.Formats) > 0 {
		cfg.Output.Formats = opts.Formats
	}

	prov, err := provenance.Detect(p.configPath)
	if err != nil {
		p.logger.Warn("Could not read scenario provenance", logfields.Path(p.configPath), logfields.Error(err))
	}
	meta := runstore.Metadata{ConfigPath: p.configPath, Commit: prov.Commit, Dirty: prov.ConfigModified}

	observers := []engine.Option{
		engine.WithLogger(p.logger),
		engine.WithObserver(engine.RecorderObserver{Recorder: p.recorder}),
	}
	var setupIssues []error

	store := p.store
	if store == nil && !opts.NoStore && cfg.Storage.SQLitePath != "" {
		s, err := runstore.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			setupIssues = append(setupIssues, err)
		} else {
			defer s.Close()
			store = s
		}
	}
	if store != nil && !opts.NoStore {
		observers = append(observers, engine.WithObserver(runstore.NewObserver(store, meta)))
	}

	if opts.Publish && cfg.Publish.NATSURL != "" {
		pub, err := publish.Connect(cfg.Publish.NATSURL, cfg.Publish.Subject, p.logger)
		if err != nil {
			setupIssues = append(setupIssues, err)
		} else {
			defer pub.Close()
			observers = append(observers, engine.WithObserver(pub))
		}
	}

	eng, err := engine.New(cfg, observers...)
	if err != nil {
		return nil, err
	}
	summary, runErr := eng.Run(ctx)
	if summary == nil {
		return nil, runErr
	}
	result := &runResult{Summary: summary}
	if last, ok := eng.Ledger().Last(); ok {
		result.Final = &last
	}

	for _, err := range setupIssues {
		stage := stageStore
		if ferrors.GetCategory(err) == ferrors.CategoryPublish {
			stage = stagePublish
		}
		p.postFailure(summary, stage, err)
	}

	if summary.YearsCompleted > 0 && len(cfg.Output.Formats) > 0 {
		doc := report.NewDocument(summary, eng.Ledger().Export())
		reports, err := report.NewWriter(cfg.Output.Directory, p.logger).Write(doc, cfg.Output.Formats)
		if err != nil {
			p.postFailure(summary, stageReport, err)
		}
		result.Reports = reports
		result.Artifacts = p.upload(ctx, cfg, summary, reports)
	}

	if store != nil && !opts.NoStore && len(summary.Errors) > 0 {
		if err := store.SaveRun(ctx, runstore.FromSummary(summary, meta)); err != nil {
			p.logger.Warn("Could not record post-processing issues", logfields.RunID(summary.RunID), logfields.Error(err))
		}
	}
	return result, runErr
}

func (p *pipeline) upload(ctx context.Context, cfg *config.Config, summary *engine.Summary, reports []report.Artifact) []artifacts.Info {
	if len(reports) == 0 {
		return nil
	}
	store, err := artifacts.Open(ctx, cfg.Output.Artifacts)
	if err != nil {
		p.postFailure(summary, stageArtifact, err)
		return nil
	}
	if store == nil {
		return nil
	}
	u := &artifacts.Uploader{
		Store:  store,
		Prefix: cfg.Output.Artifacts.Prefix,
		Retry:  retry.FromConfig(cfg.Output.Artifacts.Retry),
		Logger: p.logger,
	}
	infos, err := u.Upload(ctx, summary.RunID, reports)
	if err != nil {
		p.postFailure(summary, stageArtifact, err)
	}
	return infos
}

func printSummary(g *Global, res *runResult) {
	s := res.Summary
	fmt.Fprintf(g.Stdout, "run %s: %s, %d year(s), seed %d\n", s.RunID, s.Status, s.YearsCompleted, s.Seed)
	if f := res.Final; f != nil {
		fmt.Fprintf(g.Stdout, "  %d debt/GDP %s\n", f.Year, percentOrNA(f.Get(ledger.MetricDebtStockGDP)))
	}
	for _, r := range res.Reports {
		fmt.Fprintf(g.Stdout, "  %-8s %s\n", r.Format, r.Path)
	}
	for _, a := range res.Artifacts {
		fmt.Fprintf(g.Stdout, "  uploaded %s\n", a.URL)
	}
	for _, issue := range s.Errors {
		fmt.Fprintf(g.Stdout, "  issue: %s\n", issue)
	}
}

func percentOrNA(v ledger.Value) string {
	if !v.Valid {
		return ledger.MissingCSV
	}
	return fmt.Sprintf("%.1f%%", v.Float*100)
}
