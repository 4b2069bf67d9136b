package commands

import (
	"fmt"

	"github.com/deluair/BD-publicfinance-simulation/internal/engine"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg, engine.WithLogger(g.Logger), engine.WithSeed(1))
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "%s is valid: %d years (%d to %d), %d steps\n",
		root.Config, cfg.Simulation.Years(), cfg.Simulation.StartYear, cfg.Simulation.EndYear, len(eng.Plan()))
	return nil
}
