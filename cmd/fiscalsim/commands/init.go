package commands

import (
	"fmt"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing scenario file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Wrote example scenario to %s\n", root.Config)
	return nil
}
