package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/inful/mdfp"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	"github.com/deluair/BD-publicfinance-simulation/internal/ledger"
)

// headline is the column set of the per-year summary table.
var headline = []struct {
	metric ledger.Metric
	label  string
}{
	{ledger.MetricGDP, "GDP"},
	{ledger.MetricGDPGrowth, "Growth"},
	{ledger.MetricInflation, "Inflation"},
	{ledger.MetricRevenueGDP, "Revenue/GDP"},
	{ledger.MetricExpenditureGDP, "Expenditure/GDP"},
	{ledger.MetricOverallDeficitGDP, "Deficit/GDP"},
	{ledger.MetricDebtStockGDP, "Debt/GDP"},
	{ledger.MetricDSABreach, "DSA breach"},
}

type markdownRenderer struct{}

func (markdownRenderer) Format() config.ReportFormat { return config.FormatMarkdown }
func (markdownRenderer) FileName() string            { return "report.md" }

func (markdownRenderer) Render(w io.Writer, doc Document) error {
	body := MarkdownBody(doc, language.English)
	fm, err := frontmatter(doc, body)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "---\n"+fm+"---\n\n"); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

type frontmatterFields struct {
	Title     string `yaml:"title"`
	RunID     string `yaml:"run_id"`
	Seed      uint64 `yaml:"seed"`
	Status    string `yaml:"status"`
	StartYear int    `yaml:"start_year"`
	EndYear   int    `yaml:"end_year"`
	Generated string `yaml:"generated"`
}

// frontmatter serializes the run metadata and appends a content fingerprint
// computed over the metadata and body.
func frontmatter(doc Document, body []byte) (string, error) {
	out, err := yaml.Marshal(frontmatterFields{
		Title:     title(doc),
		RunID:     doc.RunID,
		Seed:      doc.Seed,
		Status:    doc.Status,
		StartYear: doc.StartYear,
		EndYear:   doc.EndYear,
		Generated: doc.Generated.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("serialize frontmatter: %w", err)
	}
	fields := string(out)
	fp := mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(fields, "\n"), string(body))
	return fields + mdfp.FingerprintField + ": " + fp + "\n", nil
}

func title(doc Document) string {
	return fmt.Sprintf("Fiscal projection %d to %d", doc.StartYear, doc.EndYear)
}

// MarkdownBody renders the report body without frontmatter.
func MarkdownBody(doc Document, tag language.Tag) []byte {
	n := newNumbers(tag)
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n", title(doc))
	fmt.Fprintf(&b, "Run `%s` (seed %d) finished with status **%s**.\n\n", doc.RunID, doc.Seed, doc.Status)

	b.WriteString("## Headline indicators\n\n| Year |")
	for _, h := range headline {
		b.WriteString(" " + h.label + " |")
	}
	b.WriteString("\n| ---: |")
	for range headline {
		b.WriteString(" ---: |")
	}
	b.WriteString("\n")
	for _, year := range doc.Table.Years() {
		fmt.Fprintf(&b, "| %d |", year)
		for _, h := range headline {
			v, _ := doc.Table.Value(year, h.metric)
			b.WriteString(" " + n.format(v, kindOf(h.metric)) + " |")
		}
		b.WriteString("\n")
	}

	if years := doc.Table.Years(); len(years) > 0 {
		last := years[len(years)-1]
		fmt.Fprintf(&b, "\n## Final year (%d)\n\n| Metric | Value |\n| --- | ---: |\n", last)
		for _, m := range doc.Table.Columns {
			v, _ := doc.Table.Value(last, m)
			fmt.Fprintf(&b, "| %s | %s |\n", m, n.format(v, kindOf(m)))
		}
	}

	if len(doc.Issues) > 0 {
		b.WriteString("\n## Issues\n\n")
		for _, issue := range doc.Issues {
			fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(issue, "\n", " "))
		}
	}
	return b.Bytes()
}
