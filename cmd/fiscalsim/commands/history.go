package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/deluair/BD-publicfinance-simulation/internal/runstore"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	DB    string `help:"Run database (overrides storage.sqlite_path)" type:"path"`
	Limit int    `short:"n" help:"Maximum runs to list (0 for all)" default:"20"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	store, err := root.openStore(g, h.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(g.Stdout, "no runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tYEARS\tSTATUS\tSEED\tCOMMIT")
	for _, r := range runs {
		commit := r.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		if r.Dirty {
			commit += "+"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d-%d (%d)\t%s\t%d\t%s\n",
			r.ID, r.Started.Local().Format(time.DateTime), r.StartYear, r.EndYear, r.YearsCompleted,
			r.Status, r.Seed, orDash(commit))
	}
	return tw.Flush()
}

// openStore opens the run database named by override, or else by the
// scenario's storage section.
func (c *CLI) openStore(g *Global, override string) (*runstore.SQLiteStore, error) {
	path := override
	if path == "" {
		cfg, err := c.loadConfig(g)
		if err != nil {
			return nil, err
		}
		path = cfg.Storage.SQLitePath
	}
	if path == "" {
		return nil, noStoreError()
	}
	return runstore.NewSQLiteStore(path)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
