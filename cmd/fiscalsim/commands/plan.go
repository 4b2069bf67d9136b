package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/deluair/BD-publicfinance-simulation/internal/engine"
)

// PlanCmd implements the 'plan' command.
type PlanCmd struct{}

func (p *PlanCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg, engine.WithLogger(g.Logger), engine.WithSeed(1))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTEP\tCONSUMES\tPUBLISHES")
	for _, entry := range engine.Describe(eng.Plan()) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", entry.Order, entry.Step, dash(entry.Consumes), dash(entry.Publishes))
	}
	return tw.Flush()
}

func dash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
