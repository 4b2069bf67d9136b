// Command fiscalsim projects the public finances of a multi-sector economy
// year by year and records the results.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/deluair/BD-publicfinance-simulation/cmd/fiscalsim/commands"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("fiscalsim"),
		kong.Description("Multi-sector macro-fiscal projection engine."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	global := &commands.Global{Logger: slog.Default(), Stdout: os.Stdout}
	if err := kctx.Run(global, cli); err != nil {
		adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		os.Exit(adapter.Report(os.Stderr, err))
	}
}
