// Package commands implements the fiscalsim subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Scenario configuration file" default:"config.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run      RunCmd      `cmd:"" help:"Simulate the configured horizon and write reports"`
	Init     InitCmd     `cmd:"" help:"Write an example scenario file"`
	Validate ValidateCmd `cmd:"" help:"Check the scenario file and the step plan"`
	Plan     PlanCmd     `cmd:"" help:"Print the ordered year-loop steps"`
	History  HistoryCmd  `cmd:"" help:"List stored runs"`
	Show     ShowCmd     `cmd:"" help:"Print the ledger of a stored run"`
	Serve    ServeCmd    `cmd:"" help:"Serve stored runs over HTTP"`
	Watch    WatchCmd    `cmd:"" help:"Rerun when the scenario changes or on a schedule"`
}

var (
	logLevel  slog.LevelVar
	logOutput io.Writer = os.Stderr
)

// AfterApply runs after flag parsing and installs the default logger. The
// level may be refined later from the scenario file unless -v was given.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logLevel.Set(slog.LevelInfo)
	if c.Verbose {
		logLevel.Set(slog.LevelDebug)
	} else if raw := os.Getenv("FISCALSIM_LOG_LEVEL"); raw != "" {
		logLevel.Set(levelFor(config.NormalizeLogLevel(raw)))
	}
	format := config.NormalizeLogFormat(os.Getenv("FISCALSIM_LOG_FORMAT"))
	slog.SetDefault(newLogger(format))
	return nil
}

func newLogger(format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: &logLevel}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(logOutput, opts))
	}
	return slog.New(slog.NewTextHandler(logOutput, opts))
}

// applyLogging adopts the scenario's logging section.
func (c *CLI) applyLogging(g *Global, cfg *config.Config) {
	if !c.Verbose && os.Getenv("FISCALSIM_LOG_LEVEL") == "" {
		logLevel.Set(levelFor(cfg.Logging.Level))
	}
	if os.Getenv("FISCALSIM_LOG_FORMAT") == "" && cfg.Logging.Format == config.LogFormatJSON {
		g.Logger = newLogger(config.LogFormatJSON)
		slog.SetDefault(g.Logger)
	}
}

// loadConfig reads the scenario file and applies its logging section.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	c.applyLogging(g, cfg)
	return cfg, nil
}

func levelFor(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseFormats(raw []string) ([]config.ReportFormat, error) {
	var out []config.ReportFormat
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			f, ok := config.ParseReportFormat(part)
			if !ok {
				return nil, unknownFormatError(part)
			}
			out = append(out, f)
		}
	}
	return out, nil
}
