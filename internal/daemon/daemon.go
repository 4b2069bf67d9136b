package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Config controls which triggers a Daemon installs.
type Config struct {
	// ConfigPath is watched for changes when Watch is set.
	ConfigPath string
	Watch      bool
	Debounce   time.Duration
	// Every schedules periodic reruns when positive.
	Every time.Duration
	// RunOnStart triggers one run as soon as the daemon starts.
	RunOnStart bool
}

// Daemon wires watcher and scheduler triggers into a Coalescer.
type Daemon struct {
	cfg       Config
	logger    *slog.Logger
	coalescer *Coalescer
	watcher   *ConfigWatcher
	scheduler *Scheduler
	workers   workerGroup
	cancel    context.CancelFunc
}

// New validates cfg and builds the daemon. run is called for every run.
func New(cfg Config, run RunFunc, logger *slog.Logger) (*Daemon, error) {
	if run == nil {
		return nil, errors.New("run function is required")
	}
	if !cfg.Watch && cfg.Every <= 0 && !cfg.RunOnStart {
		return nil, errors.New("daemon needs a watch path, a schedule or run-on-start")
	}
	if cfg.Watch && cfg.ConfigPath == "" {
		return nil, errors.New("watch requires a config path")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{cfg: cfg, logger: logger, coalescer: NewCoalescer(run, logger)}, nil
}

// Coalescer exposes the trigger sink, mainly for status reporting.
func (d *Daemon) Coalescer() *Coalescer { return d.coalescer }

// Start installs the triggers and returns immediately.
func (d *Daemon) Start(ctx context.Context) error {
	ctx, d.cancel = context.WithCancel(ctx)
	d.workers.Go(func() { d.coalescer.Run(ctx) })

	if d.cfg.Watch {
		w, err := NewConfigWatcher(d.cfg.ConfigPath, d.cfg.Debounce, func() { d.coalescer.Trigger("config-change") }, d.logger)
		if err != nil {
			d.cancel()
			return err
		}
		if err := w.Start(ctx); err != nil {
			_ = w.Stop()
			d.cancel()
			return err
		}
		d.watcher = w
	}

	if d.cfg.Every > 0 {
		s, err := NewScheduler(d.logger)
		if err != nil {
			d.cancel()
			return err
		}
		if _, err := s.ScheduleEvery("fiscalsim-rerun", d.cfg.Every, func() { d.coalescer.Trigger("schedule") }); err != nil {
			_ = s.Stop()
			d.cancel()
			return err
		}
		s.Start()
		d.scheduler = s
	}

	if d.cfg.RunOnStart {
		d.coalescer.Trigger("startup")
	}
	d.logger.Info("Daemon started",
		slog.Bool("watch", d.cfg.Watch),
		slog.Duration("every", d.cfg.Every))
	return nil
}

// Stop removes the triggers and waits for an in-flight run, bounded by ctx.
func (d *Daemon) Stop(ctx context.Context) error {
	var errs []error
	if d.watcher != nil {
		if err := d.watcher.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop watcher: %w", err))
		}
	}
	if d.scheduler != nil {
		if err := d.scheduler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if d.cancel != nil {
		d.cancel()
	}
	if err := d.workers.StopAndWait(ctx); err != nil {
		errs = append(errs, err)
	}
	d.logger.Info("Daemon stopped", slog.Int("runs", d.coalescer.Stats().Runs))
	return errors.Join(errs...)
}
