package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/engine"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/runstore"
)

func testGlobal(out io.Writer) *Global {
	return &Global{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), Stdout: out}
}

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, config.Init(path, false))
	return path
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats([]string{"csv, json", "", "markdown"})
	require.NoError(t, err)
	assert.Equal(t, []config.ReportFormat{config.FormatCSV, config.FormatJSON, config.FormatMarkdown}, got)

	got, err = parseFormats(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseFormats([]string{"csv,pdf"})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryValidation, ferrors.GetCategory(err))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFor(config.LogLevelDebug))
	assert.Equal(t, slog.LevelWarn, levelFor(config.LogLevelWarn))
	assert.Equal(t, slog.LevelError, levelFor(config.LogLevelError))
	assert.Equal(t, slog.LevelInfo, levelFor(config.LogLevelInfo))
}

func TestCLIParsesRunFlags(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("fiscalsim"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"-c", "s.yaml", "run", "--seed", "7", "-f", "csv,json", "--no-store"})
	require.NoError(t, err)
	assert.Equal(t, "run", kctx.Command())
	assert.Equal(t, uint64(7), cli.Run.Seed)
	assert.Equal(t, []string{"csv", "json"}, cli.Run.Format)
	assert.True(t, cli.Run.NoStore)
	assert.True(t, filepath.IsAbs(cli.Config))
}

func TestPipelineExecuteWritesReportsAndStoresRun(t *testing.T) {
	path := writeScenario(t)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	dir := t.TempDir()
	cfg.Storage.SQLitePath = filepath.Join(dir, "runs.db")

	p := newPipeline(path, slog.New(slog.NewTextHandler(io.Discard, nil)), prom.NewRegistry())
	res, err := p.execute(t.Context(), cfg, runOptions{
		OutputDir: filepath.Join(dir, "out"),
		Seed:      9,
		Formats:   []config.ReportFormat{config.FormatCSV, config.FormatJSON},
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	s := res.Summary
	assert.Equal(t, engine.StatusCompleted, s.Status)
	assert.Equal(t, uint64(9), s.Seed)
	assert.Equal(t, cfg.Simulation.Years(), s.YearsCompleted)
	assert.Empty(t, s.Errors)

	require.NotNil(t, res.Final)
	assert.Equal(t, cfg.Simulation.EndYear, res.Final.Year)
	var out bytes.Buffer
	printSummary(testGlobal(&out), res)
	assert.Contains(t, out.String(), fmt.Sprintf("  %d debt/GDP ", cfg.Simulation.EndYear))

	require.Len(t, res.Reports, 2)
	for _, r := range res.Reports {
		assert.FileExists(t, r.Path)
		assert.Equal(t, filepath.Join(dir, "out", s.RunID), filepath.Dir(r.Path))
	}

	store, err := runstore.NewSQLiteStore(cfg.Storage.SQLitePath)
	require.NoError(t, err)
	defer store.Close()
	run, err := store.GetRun(context.Background(), s.RunID)
	require.NoError(t, err)
	assert.Equal(t, string(engine.StatusCompleted), run.Status)
	assert.Equal(t, s.YearsCompleted, run.YearsCompleted)
}

func TestPipelineRecordsReportFailure(t *testing.T) {
	path := writeScenario(t)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	// A regular file where the report directory should be.
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o600))

	p := newPipeline(path, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	res, err := p.execute(t.Context(), cfg, runOptions{
		OutputDir: blocked,
		Formats:   []config.ReportFormat{config.FormatCSV},
		NoStore:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, engine.StatusCompleted, res.Summary.Status)
	assert.Empty(t, res.Reports)
	assert.NotEmpty(t, res.Summary.Errors)
}

func TestValidateAndPlanCommands(t *testing.T) {
	path := writeScenario(t)
	root := &CLI{Config: path}

	var out bytes.Buffer
	require.NoError(t, (&ValidateCmd{}).Run(testGlobal(&out), root))
	assert.Contains(t, out.String(), "is valid")

	out.Reset()
	require.NoError(t, (&PlanCmd{}).Run(testGlobal(&out), root))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Greater(t, len(lines), 1)
}

func TestInitRefusesToOverwrite(t *testing.T) {
	path := writeScenario(t)
	err := (&InitCmd{}).Run(testGlobal(io.Discard), &CLI{Config: path})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryValidation, ferrors.GetCategory(err))

	require.NoError(t, (&InitCmd{Force: true}).Run(testGlobal(io.Discard), &CLI{Config: path}))
}

func TestHistoryAndShowCommands(t *testing.T) {
	path := writeScenario(t)
	db := filepath.Join(t.TempDir(), "runs.db")
	root := &CLI{Config: path}

	var out bytes.Buffer
	require.NoError(t, (&HistoryCmd{DB: db}).Run(testGlobal(&out), root))
	assert.Equal(t, "no runs recorded\n", out.String())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	cfg.Storage.SQLitePath = db
	p := newPipeline(path, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	res, err := p.execute(t.Context(), cfg, runOptions{OutputDir: t.TempDir()})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&HistoryCmd{DB: db, Limit: 5}).Run(testGlobal(&out), root))
	assert.Contains(t, out.String(), res.Summary.RunID)
	assert.Contains(t, out.String(), "completed")

	out.Reset()
	require.NoError(t, (&ShowCmd{RunID: res.Summary.RunID, DB: db, Format: "csv"}).Run(testGlobal(&out), root))
	rows := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(t, strings.HasPrefix(rows[0], "Year,"))
	assert.Len(t, rows, cfg.Simulation.Years()+1)

	err = (&ShowCmd{RunID: "missing", DB: db, Format: "csv"}).Run(testGlobal(io.Discard), root)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryNotFound, ferrors.GetCategory(err))
}

func TestHistoryNeedsScenarioOrDB(t *testing.T) {
	err := (&HistoryCmd{}).Run(testGlobal(io.Discard), &CLI{Config: filepath.Join(t.TempDir(), "absent.yaml")})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryConfig, ferrors.GetCategory(err))
}
