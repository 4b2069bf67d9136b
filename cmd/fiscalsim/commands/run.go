package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
	"github.com/deluair/BD-publicfinance-simulation/internal/telemetry"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Output  string   `short:"o" help:"Report directory (overrides output.directory)"`
	Seed    uint64   `help:"Random seed (overrides simulation.seed)"`
	Format  []string `short:"f" help:"Report formats: csv, json, markdown, html" sep:","`
	NoStore bool     `name:"no-store" help:"Do not record the run in the run store"`
	Publish bool     `help:"Publish completed years to NATS"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	formats, err := parseFormats(r.Format)
	if err != nil {
		return err
	}
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, "fiscalsim", "")
	if err != nil {
		g.Logger.Warn("Tracing disabled", logfields.Error(err))
	}
	defer func() { _ = shutdown(context.Background()) }()

	p := newPipeline(root.Config, g.Logger, nil)
	res, err := p.execute(ctx, cfg, runOptions{
		OutputDir: r.Output,
		Seed:      r.Seed,
		Formats:   formats,
		NoStore:   r.NoStore,
		Publish:   r.Publish,
	})
	if res != nil {
		printSummary(g, res)
	}
	return err
}
