package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
)

type csvRenderer struct{}

func (csvRenderer) Format() config.ReportFormat { return config.FormatCSV }
func (csvRenderer) FileName() string            { return "ledger.csv" }

func (csvRenderer) Render(w io.Writer, doc Document) error {
	return doc.Table.WriteCSV(w)
}

type jsonRenderer struct{}

func (jsonRenderer) Format() config.ReportFormat { return config.FormatJSON }
func (jsonRenderer) FileName() string            { return "ledger.json" }

type jsonDocument struct {
	RunID     string       `json:"run_id"`
	Seed      uint64       `json:"seed"`
	Status    string       `json:"status"`
	StartYear int          `json:"start_year"`
	EndYear   int          `json:"end_year"`
	Generated time.Time    `json:"generated"`
	Issues    []string     `json:"issues,omitempty"`
	Ledger    ledger.Table `json:"ledger"`
}

func (jsonRenderer) Render(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonDocument{
		RunID:     doc.RunID,
		Seed:      doc.Seed,
		Status:    doc.Status,
		StartYear: doc.StartYear,
		EndYear:   doc.EndYear,
		Generated: doc.Generated,
		Issues:    doc.Issues,
		Ledger:    doc.Table,
	})
}
