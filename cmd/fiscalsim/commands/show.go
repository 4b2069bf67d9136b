package commands

import (
	"context"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	RunID  string `arg:"" name:"run-id" help:"Stored run to print"`
	DB     string `help:"Run database (overrides storage.sqlite_path)" type:"path"`
	Format string `short:"f" help:"Output format: csv or json" default:"csv" enum:"csv,json"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	store, err := root.openStore(g, s.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	table, err := store.LoadLedger(context.Background(), s.RunID)
	if err != nil {
		return err
	}
	if format, _ := config.ParseReportFormat(s.Format); format == config.FormatJSON {
		return table.WriteJSON(g.Stdout)
	}
	return table.WriteCSV(g.Stdout)
}
