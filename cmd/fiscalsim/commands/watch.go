package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/deluair/BD-publicfinance-simulation/internal/api"
	"github.com/deluair/BD-publicfinance-simulation/internal/daemon"
	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
	"github.com/deluair/BD-publicfinance-simulation/internal/runstore"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Every   time.Duration `help:"Rerun on this interval as well (overrides daemon.every)"`
	Addr    string        `help:"Also serve stored runs and metrics on this address"`
	Publish bool          `help:"Publish completed years to NATS"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	every := w.Every
	if every == 0 {
		every = cfg.Daemon.EveryDuration()
	}

	reg := prom.NewRegistry()
	p := newPipeline(root.Config, g.Logger, reg)

	var store *runstore.SQLiteStore
	if cfg.Storage.SQLitePath != "" {
		if store, err = runstore.NewSQLiteStore(cfg.Storage.SQLitePath); err != nil {
			return err
		}
		defer store.Close()
		p.store = store
	}

	run := func(ctx context.Context, reason string) error {
		// Each run rereads the scenario so edits take effect.
		current, err := root.loadConfig(g)
		if err != nil {
			g.Logger.Error("Scenario reload failed", logfields.Path(root.Config), logfields.Error(err))
			return err
		}
		g.Logger.Info("Starting run", slog.String("reason", reason))
		res, err := p.execute(ctx, current, runOptions{Publish: w.Publish})
		if res != nil {
			printSummary(g, res)
		}
		return err
	}

	d, err := daemon.New(daemon.Config{
		ConfigPath: root.Config,
		Watch:      true,
		Debounce:   cfg.Daemon.DebounceDuration(),
		Every:      every,
		RunOnStart: true,
	}, run, g.Logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := d.Start(ctx); err != nil {
		return err
	}

	var serveErr error
	if w.Addr != "" && store != nil {
		serveErr = serveUntilDone(ctx, api.NewServer(w.Addr, store, reg, g.Logger))
	} else {
		if w.Addr != "" {
			g.Logger.Warn("No run store configured; not serving", logfields.Path(root.Config))
		}
		<-ctx.Done()
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := d.Stop(stopCtx); err != nil {
		return err
	}
	return serveErr
}
