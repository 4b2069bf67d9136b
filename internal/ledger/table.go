package ledger

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/deluair/BD-publicfinance-simulation/internal/numeric"
)

// MissingCSV is how missing values are written to CSV.
const MissingCSV = "NA"

// Row is one year of a Table. Values follow Table.Columns.
type Row struct {
	Year   int     `json:"year"`
	Values []Value `json:"values"`
}

// Table is the exported, year-ordered view of a ledger.
type Table struct {
	Columns []Metric `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Column returns the values of m in row order, or nil if m is not a column.
func (t Table) Column(m Metric) []Value {
	idx := -1
	for i, c := range t.Columns {
		if c == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		if idx < len(r.Values) {
			out[i] = r.Values[idx]
		}
	}
	return out
}

// Value returns the cell for year and m.
func (t Table) Value(year int, m Metric) (Value, bool) {
	for _, r := range t.Rows {
		if r.Year != year {
			continue
		}
		for i, c := range t.Columns {
			if c == m && i < len(r.Values) {
				return r.Values[i], true
			}
		}
	}
	return Value{}, false
}

// Years returns the row years.
func (t Table) Years() []int {
	years := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		years[i] = r.Year
	}
	return years
}

// FormatCell renders v for text outputs.
func FormatCell(v Value) string {
	if !v.Valid {
		return MissingCSV
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

// WriteCSV writes a header of Year plus the metric columns, then one line per
// row. Missing values are written as NA.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "Year")
	for _, c := range t.Columns {
		header = append(header, string(c))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, r := range t.Rows {
		record[0] = strconv.Itoa(r.Year)
		for i := range t.Columns {
			var v Value
			if i < len(r.Values) {
				v = r.Values[i]
			}
			record[i+1] = FormatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table written by WriteCSV.
func ReadCSV(r io.Reader) (Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 || len(records[0]) == 0 || records[0][0] != "Year" {
		return Table{}, fmt.Errorf("csv: missing Year header")
	}
	t := Table{Columns: make([]Metric, 0, len(records[0])-1)}
	for _, h := range records[0][1:] {
		if !isMetric(Metric(h)) {
			return Table{}, fmt.Errorf("csv: unknown metric column %q", h)
		}
		t.Columns = append(t.Columns, Metric(h))
	}
	for n, rec := range records[1:] {
		year, err := strconv.Atoi(rec[0])
		if err != nil {
			return Table{}, fmt.Errorf("csv line %d: invalid year %q", n+2, rec[0])
		}
		row := Row{Year: year, Values: make([]Value, len(t.Columns))}
		for i, cell := range rec[1:] {
			if i >= len(row.Values) || cell == MissingCSV || cell == "" {
				continue
			}
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Table{}, fmt.Errorf("csv line %d: column %s: %w", n+2, t.Columns[i], err)
			}
			row.Values[i] = numeric.Float(f)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteJSON writes the table as indented JSON. Missing values are null.
func (t Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
