// Package report renders a completed run's ledger into files.
package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/engine"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
)

// Document is everything a renderer needs about one run.
type Document struct {
	RunID     string
	Seed      uint64
	Status    string
	StartYear int
	EndYear   int
	Generated time.Time
	Table     ledger.Table
	Issues    []string
}

// NewDocument builds a Document from a run summary and its exported ledger.
func NewDocument(s *engine.Summary, t ledger.Table) Document {
	return Document{
		RunID:     s.RunID,
		Seed:      s.Seed,
		Status:    string(s.Status),
		StartYear: s.StartYear,
		EndYear:   s.EndYear,
		Generated: s.Finished.UTC(),
		Table:     t,
		Issues:    append([]string(nil), s.Errors...),
	}
}

// Renderer writes one report format.
type Renderer interface {
	Format() config.ReportFormat
	FileName() string
	Render(w io.Writer, doc Document) error
}

// ErrUnknownFormat is returned for a format with no renderer.
var ErrUnknownFormat = errors.New("unknown report format")

// Renderers returns the built-in renderers keyed by format.
func Renderers() map[config.ReportFormat]Renderer {
	return map[config.ReportFormat]Renderer{
		config.FormatCSV:      csvRenderer{},
		config.FormatJSON:     jsonRenderer{},
		config.FormatMarkdown: markdownRenderer{},
		config.FormatHTML:     htmlRenderer{},
	}
}

// Artifact is a report file written to disk.
type Artifact struct {
	Format config.ReportFormat
	Path   string
}

// Writer renders documents into a directory, one subdirectory per run.
type Writer struct {
	Dir       string
	Renderers map[config.ReportFormat]Renderer
	Logger    *slog.Logger
}

// NewWriter returns a Writer using the built-in renderers.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{Dir: dir, Renderers: Renderers(), Logger: logger}
}

// Write renders every requested format. A failing format does not stop the
// others; the returned error joins all failures.
func (w *Writer) Write(doc Document, formats []config.ReportFormat) ([]Artifact, error) {
	runDir := filepath.Join(w.Dir, doc.RunID)
	if err := os.MkdirAll(runDir, 0o750); err != nil {
		return nil, ferrors.ReportError(err, "create report directory").
			WithContext("path", runDir).
			Build()
	}

	var (
		artifacts []Artifact
		errs      []error
	)
	for _, format := range formats {
		r, ok := w.Renderers[format]
		if !ok {
			errs = append(errs, ferrors.ReportError(ErrUnknownFormat, "render report").
				WithContext("format", string(format)).
				Build())
			continue
		}
		path := filepath.Join(runDir, r.FileName())
		if err := writeFile(path, r, doc); err != nil {
			w.Logger.Warn("Report rendering failed", logfields.Path(path), logfields.Error(err))
			errs = append(errs, ferrors.ReportError(err, "render report").
				WithContext("format", string(format)).
				WithContext("path", path).
				Build())
			continue
		}
		w.Logger.Info("Report written", logfields.Path(path))
		artifacts = append(artifacts, Artifact{Format: format, Path: path})
	}
	return artifacts, errors.Join(errs...)
}

func writeFile(path string, r Renderer, doc Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return r.Render(f, doc)
}
